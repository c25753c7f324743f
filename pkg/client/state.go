package client

import (
	"strings"

	"github.com/pranavvermapv/real-estate-crm/internal/model"
)

// LeadView is the client-local state for the leads page: the full fetched
// list, the active search term and at most one row under edit. The list is
// only patched from rows the server returned; a failed request leaves it
// untouched.
type LeadView struct {
	Items      []model.Lead
	SearchTerm string
	Edit       *model.Lead
}

// Visible computes the filtered list from the current state. The search
// term matches case-insensitively as a substring of the name or the phone
// number. Filtering never refetches; it works on the in-memory list.
func (v *LeadView) Visible() []model.Lead {
	if v.SearchTerm == "" {
		return v.Items
	}
	term := strings.ToLower(v.SearchTerm)
	var visible []model.Lead
	for _, lead := range v.Items {
		if strings.Contains(strings.ToLower(lead.Name), term) ||
			strings.Contains(strings.ToLower(lead.PhoneNumber), term) {
			visible = append(visible, lead)
		}
	}
	return visible
}

// StartEdit marks a row as under edit. Editing is exclusive: starting a new
// edit replaces the current one.
func (v *LeadView) StartEdit(lead model.Lead) {
	edit := lead
	v.Edit = &edit
}

// CancelEdit drops the in-progress edit
func (v *LeadView) CancelEdit() {
	v.Edit = nil
}

// ApplyAdd appends the row the server returned
func (v *LeadView) ApplyAdd(lead model.Lead) {
	v.Items = append(v.Items, lead)
}

// ApplyUpdate replaces the matching row with the one the server returned
// and closes the edit
func (v *LeadView) ApplyUpdate(lead model.Lead) {
	for i := range v.Items {
		if v.Items[i].ID == lead.ID {
			v.Items[i] = lead
			break
		}
	}
	v.Edit = nil
}

// ApplyDelete removes the row with the given id
func (v *LeadView) ApplyDelete(id uint) {
	items := v.Items[:0]
	for _, lead := range v.Items {
		if lead.ID != id {
			items = append(items, lead)
		}
	}
	v.Items = items
}

// PropertyView is the client-local state for the properties page
type PropertyView struct {
	Items      []model.Property
	SearchTerm string
	Edit       *model.Property
}

// Visible computes the filtered list: the search term matches
// case-insensitively against location, type or availability.
func (v *PropertyView) Visible() []model.Property {
	if v.SearchTerm == "" {
		return v.Items
	}
	term := strings.ToLower(v.SearchTerm)
	var visible []model.Property
	for _, property := range v.Items {
		if strings.Contains(strings.ToLower(property.Location), term) ||
			strings.Contains(strings.ToLower(property.Type), term) ||
			strings.Contains(strings.ToLower(property.Availability), term) {
			visible = append(visible, property)
		}
	}
	return visible
}

// StartEdit marks a row as under edit, replacing any current edit
func (v *PropertyView) StartEdit(property model.Property) {
	edit := property
	v.Edit = &edit
}

// CancelEdit drops the in-progress edit
func (v *PropertyView) CancelEdit() {
	v.Edit = nil
}

// ApplyAdd appends the row the server returned
func (v *PropertyView) ApplyAdd(property model.Property) {
	v.Items = append(v.Items, property)
}

// ApplyUpdate replaces the matching row and closes the edit
func (v *PropertyView) ApplyUpdate(property model.Property) {
	for i := range v.Items {
		if v.Items[i].ID == property.ID {
			v.Items[i] = property
			break
		}
	}
	v.Edit = nil
}

// ApplyDelete removes the row with the given id
func (v *PropertyView) ApplyDelete(id uint) {
	items := v.Items[:0]
	for _, property := range v.Items {
		if property.ID != id {
			items = append(items, property)
		}
	}
	v.Items = items
}
