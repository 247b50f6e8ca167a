package packs

type ExportRequest struct {
	IDs    []string `json:"ids" binding:"required,min=1"`
	Name   string   `json:"name"`
	Format string   `json:"format" binding:"omitempty,oneof=json yaml"`
}
