package tag

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// CreateTagRequest is the payload for POST /tags. Tags are also created
// implicitly when articles reference unknown names.
type CreateTagRequest struct {
	Name string `json:"name"`
}

func (r CreateTagRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.RuneLength(1, 50).Error("name must be 1-50 characters"),
		),
	)
}

// TagResponse is the client representation of a tag.
type TagResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// PopularTagResponse adds the usage count for the popular-tags feed.
type PopularTagResponse struct {
	TagResponse
	UsageCount int `json:"usage_count"`
}

func ToResponse(t *Tag) TagResponse {
	return TagResponse{
		ID:        t.ID,
		Name:      t.Name,
		Slug:      t.Slug.String(),
		CreatedAt: t.CreatedAt,
	}
}
