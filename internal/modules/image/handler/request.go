package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"stored-image-server/internal/modules/common/httpx"
	moduledto "stored-image-server/internal/modules/image/dto"
	imageservice "stored-image-server/internal/modules/image/service"

	"github.com/gin-gonic/gin"
)

const ownerScopeKey = "image.owner_scope"

// ScopeToUser 用于 /users/:id/stored_images 下的嵌套路由，把路径中的用户 id 作为图片范围。
func (h *Handler) ScopeToUser(c *gin.Context) {
	userID, ok := httpx.ParseIDParam(c, "id")
	if !ok {
		httpx.WriteErrors(c, http.StatusNotFound, "User not found")
		c.Abort()
		return
	}
	c.Set(ownerScopeKey, userID)
	c.Next()
}

func ownerScope(c *gin.Context) *uint {
	if v, ok := c.Get(ownerScopeKey); ok {
		if id, ok := v.(uint); ok {
			return &id
		}
	}
	return nil
}

// imageID 嵌套路由使用 :image_id，平铺路由使用 :id。
func imageID(c *gin.Context) (uint, bool) {
	if c.Param("image_id") != "" {
		return httpx.ParseIDParam(c, "image_id")
	}
	return httpx.ParseIDParam(c, "id")
}

func requireImageID(c *gin.Context) (uint, bool) {
	id, ok := imageID(c)
	if !ok {
		httpx.WriteErrors(c, http.StatusNotFound, imageservice.MsgImageNotFound)
	}
	return id, ok
}

// bindImageInput 支持 JSON {"stored_image": {...}} 与 multipart（文件字段 image）。
func bindImageInput(c *gin.Context) (moduledto.ImageInput, error) {
	var in moduledto.ImageInput
	if c.ContentType() == gin.MIMEMultipartPOSTForm {
		fileHeader, err := c.FormFile("image")
		switch {
		case err == nil:
			f, err := fileHeader.Open()
			if err != nil {
				return in, err
			}
			defer f.Close()
			content, err := io.ReadAll(f)
			if err != nil {
				return in, err
			}
			in.Upload = &moduledto.Upload{Filename: fileHeader.Filename, Content: content}
		case !errors.Is(err, http.ErrMissingFile):
			return in, err
		}
		if v, ok := c.GetPostForm("stored_image[url]"); ok {
			in.URL = &v
		}
		if v, ok := c.GetPostForm("stored_image[verified]"); ok {
			verified, err := strconv.ParseBool(v)
			if err != nil {
				return in, fmt.Errorf("invalid verified value %q", v)
			}
			in.Verified = &verified
		}
		return in, nil
	}

	var req moduledto.ImageEnvelope
	if err := c.ShouldBindJSON(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return in, nil
		}
		return in, err
	}
	in.URL = req.StoredImage.URL
	in.Verified = req.StoredImage.Verified
	return in, nil
}
