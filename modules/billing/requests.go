package billing

import "github.com/penpal-ai/database-service/pkg/validator"

type pageRequest struct {
	Limit  int64 `query:"limit" json:"-"`
	Offset int64 `query:"offset" json:"-"`
}

func (p pageRequest) Validate() error {
	return validator.Apply(
		validator.NonNegative("limit", p.Limit),
		validator.NonNegative("offset", p.Offset),
	)
}

func (p pageRequest) meta(count int) map[string]any {
	return map[string]any{"limit": p.Limit, "offset": p.Offset, "count": count}
}

type idRequest struct {
	ID string `path:"id" json:"-"`
}

type userRequest struct {
	UserID string `path:"userId" json:"-"`
}
