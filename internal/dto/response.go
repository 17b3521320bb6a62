package dto

type DeletedDTO struct {
	Deleted interface{} `json:"deleted"`
}
