package resource

type ReferencesResponse struct {
	ID         string `json:"id"`
	References int    `json:"references"`
}

type CollectionPromptRequest struct {
	PromptID string `json:"promptId" binding:"required"`
}
