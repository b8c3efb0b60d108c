package images

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"untrashapi/internal/api"
	"untrashapi/pkg/config"
	"untrashapi/pkg/utils"
)

// Upload stores a base64-encoded image in the bucket and returns its public
// URL. A data-URL prefix, if present, is stripped before decoding.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {

	defer r.Body.Close()
	ctx := r.Context()
	resParams := &api.ResParams{W: w, R: r}

	var reqData struct {
		ImageData   string `json:"image_data" validate:"required"`
		ContentType string `json:"content_type" validate:"omitempty,oneof=image/jpeg image/png image/webp"`
	}

	// validate request body
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&reqData); err != nil {
		resParams.Code = http.StatusBadRequest
		resParams.Err = err
		h.Res(resParams)
		return
	}
	if err := h.Validate.Struct(&reqData); err != nil {
		resParams.Code = http.StatusBadRequest
		resParams.Err = err
		h.Res(resParams)
		return
	}

	data := reqData.ImageData
	if idx := strings.Index(data, ","); strings.HasPrefix(data, "data:") && idx != -1 {
		data = data[idx+1:]
	}
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		resParams.Code = http.StatusBadRequest
		resParams.Err = err
		h.Res(resParams)
		return
	}

	contentType := reqData.ContentType
	if contentType == "" {
		contentType = "image/jpeg"
	}

	key := utils.NewId("img")
	if err := utils.PutObjectR2(h.R2Cli, ctx, config.IMAGE_BUCKET, key, bytes.NewReader(raw), contentType); err != nil {
		resParams.Code = http.StatusInternalServerError
		resParams.Err = err
		h.Res(resParams)
		return
	}

	resParams.Code = http.StatusOK
	resParams.ResData = &struct {
		ImageId  string `json:"image_id"`
		ImageUrl string `json:"image_url"`
	}{
		ImageId:  key,
		ImageUrl: config.VAR.IMAGE_CDN_BASE + "/" + key,
	}
	h.Res(resParams)

}
