package groups

import (
	"errors"
	"net/http"
	"untrashapi/internal/api"
	"untrashapi/internal/core"
	"untrashapi/pkg/schemas"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type memberProfile struct {
	UserId      string `json:"user_id"`
	Name        string `json:"name"`
	Picture     string `json:"picture,omitempty"`
	TotalPoints int    `json:"total_points"`
}

// Get returns the group with its member roster resolved to display profiles.
// Members whose user document has since been removed are skipped.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {

	ctx := r.Context()
	resParams := &api.ResParams{W: w, R: r}

	group, err := h.Store.GetGroup(ctx, chi.URLParam(r, "groupId"))
	if err != nil {
		resParams.Code = api.StatusForErr(err)
		resParams.Err = err
		h.Res(resParams)
		return
	}

	members := make([]memberProfile, 0, len(group.MemberIds))
	for _, memberId := range group.MemberIds {
		member, err := h.Store.GetUser(ctx, memberId)
		if err != nil {
			if !errors.Is(err, core.ErrNotFound) {
				h.Logger.Warn("member lookup failed", zap.String("user_id", memberId), zap.Error(err))
			}
			continue
		}
		members = append(members, memberProfile{
			UserId:      member.UserId,
			Name:        member.Name,
			Picture:     member.Picture,
			TotalPoints: member.TotalPoints,
		})
	}

	resParams.Code = http.StatusOK
	resParams.ResData = &struct {
		*schemas.Group
		Members []memberProfile `json:"members"`
	}{Group: group, Members: members}
	h.Res(resParams)

}
