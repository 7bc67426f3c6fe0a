package catalog

// ServiceCategory is immutable reference data owned by the catalog service.
// The core only reads it.
type ServiceCategory struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Slug      string  `json:"slug"`
	Icon      string  `json:"icon,omitempty"`
	SortOrder int     `json:"sort_order"`
	ParentID  *string `json:"parent_id,omitempty"`
	IsActive  bool    `json:"is_active"`
}
