package dto

type WatermarkRequest struct {
	Layout string `validate:"omitempty,layout"`
}

type JobRequest struct {
	ID string `validate:"required,uuid"`
}
