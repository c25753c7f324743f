package model

// Document is the metadata record for a stored PDF. A row is only created
// after the underlying file has been written to the upload directory.
// LeadID is set when the document was uploaded against a specific lead.
type Document struct {
	ID       uint   `json:"id" gorm:"primarykey"`
	Name     string `json:"name" gorm:"type:varchar(255);not null"`
	FilePath string `json:"file_path" gorm:"type:varchar(512);not null"`
	LeadID   *uint  `json:"lead_id,omitempty" gorm:"index"`
}

// LeadDocument is the per-lead JSON shape of a document row. The global
// documents endpoint serializes the original filename as "name"; the
// per-lead endpoint serializes the same column as "file_name".
type LeadDocument struct {
	ID       uint   `json:"id"`
	LeadID   uint   `json:"lead_id"`
	FileName string `json:"file_name"`
	FilePath string `json:"file_path"`
}

// LeadView renders the document as its per-lead shape.
func (d *Document) LeadView() LeadDocument {
	var leadID uint
	if d.LeadID != nil {
		leadID = *d.LeadID
	}
	return LeadDocument{
		ID:       d.ID,
		LeadID:   leadID,
		FileName: d.Name,
		FilePath: d.FilePath,
	}
}
