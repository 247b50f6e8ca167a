package models

// Folder groups prompts visually. Deleting one leaves prompt references dangling.
type Folder struct {
	Base
	Name  string `json:"name" validate:"required"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// Department is an organizational grouping used for filtering prompts.
type Department struct {
	Base
	Name string `json:"name" validate:"required"`
}

// Team groups members and can own collections.
type Team struct {
	Base
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}
