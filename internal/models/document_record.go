package models

import "time"

// DocumentRecord is one entry of the recent-documents list, cached locally
// so the sidebar can render without waiting for the server.
type DocumentRecord struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	DocumentType string `gorm:"size:255;not null;index" json:"document_type"`
	UserFileName string `gorm:"size:512" json:"user_file_name"`
	FilePathHTML string `gorm:"size:1024" json:"file_path_html"`
	FilePathPDF  string `gorm:"size:1024" json:"file_path_pdf"`
	GeneratedAt  string `gorm:"size:64" json:"generated_at"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
