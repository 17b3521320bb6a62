package types

// Filter - разобранные параметры списка из запроса, например
// /api/recipes?search=soup&sort[title]=asc&filter[dishtype]=lunch,dinner&limit=10&page=2
type Filter struct {
	Search         string                 `json:"search,omitempty"`
	Sort           map[string]string      `json:"sort,omitempty"`
	Filter         map[string]interface{} `json:"filter,omitempty"`
	Limit          int                    `json:"limit"`
	Offset         int                    `json:"offset"`
	Page           int                    `json:"page"`
	WithPagination bool                   `json:"with_pagination"`
}
