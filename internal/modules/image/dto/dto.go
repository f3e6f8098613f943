package dto

// Upload multipart 上传的图片内容。
type Upload struct {
	Filename string
	Content  []byte
}

// ImageRequest {"stored_image": {...}} 中允许的字段，owner 等其余字段被丢弃。
type ImageRequest struct {
	URL      *string `json:"url"`
	Verified *bool   `json:"verified"`
}

type ImageEnvelope struct {
	StoredImage ImageRequest `json:"stored_image"`
}

// ImageInput 创建或更新图片的输入；Upload 与 URL 同时存在时以 Upload 为准。
type ImageInput struct {
	URL      *string
	Verified *bool
	Upload   *Upload
}

// ChangesContent 是否会替换图片内容。
func (in ImageInput) ChangesContent() bool {
	return in.Upload != nil || in.URL != nil
}
