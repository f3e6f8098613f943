package projection

import (
	"time"

	"stored-image-server/internal/model"
	"stored-image-server/internal/session"
)

type ImageOwner struct {
	ID       *uint  `json:"id,omitempty"`
	Username string `json:"username"`
}

type ImageView struct {
	ID        *uint       `json:"id,omitempty"`
	URL       *string     `json:"url"`
	Verified  bool        `json:"verified"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
	User      *ImageOwner `json:"user"`
}

// ImageIndex 列表按审核状态分区；非管理员没有 unverified 键。
type ImageIndex struct {
	Verified   []ImageView  `json:"verified"`
	Unverified *[]ImageView `json:"unverified,omitempty"`
}

// Image 管理员额外看到图片 id 与所有者 id。img.User 需要预加载。
func Image(img *model.StoredImage, viewer session.Identity) ImageView {
	view := ImageView{
		URL:       img.URL,
		Verified:  img.Verified,
		CreatedAt: img.CreatedAt,
		UpdatedAt: img.UpdatedAt,
	}
	admin := viewer.IsAdmin()
	if admin {
		id := img.ID
		view.ID = &id
	}
	if img.User != nil {
		owner := &ImageOwner{Username: img.User.Username}
		if admin {
			ownerID := img.User.ID
			owner.ID = &ownerID
		}
		view.User = owner
	}
	return view
}

// Images 按存储顺序分区。
func Images(images []model.StoredImage, viewer session.Identity) ImageIndex {
	index := ImageIndex{Verified: []ImageView{}}
	unverified := []ImageView{}
	for i := range images {
		img := &images[i]
		if img.Verified {
			index.Verified = append(index.Verified, Image(img, viewer))
			continue
		}
		if viewer.IsAdmin() {
			unverified = append(unverified, Image(img, viewer))
		}
	}
	if viewer.IsAdmin() {
		index.Unverified = &unverified
	}
	return index
}
