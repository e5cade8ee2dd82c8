package comment

import (
	"taskhub/app/model"
)

type AddReq struct {
	Content string `json:"content" binding:"required"`
}

type AddRes struct {
	Comment *model.Comment `json:"comment"`
	Message string         `json:"message"`
}

type ListRes struct {
	Comments []*model.Comment `json:"comments"`
	Message  string           `json:"message"`
}
