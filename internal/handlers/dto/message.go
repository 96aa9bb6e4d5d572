package dto

// PostMessageRequest - тело запроса на пост в ленту.
// Text без binding:required: пустой после trim текст - это no-op
// со статусом 204, а не ошибка валидации.
type PostMessageRequest struct {
	Text      string `json:"text"`
	Handle    string `json:"handle"`
	Anonymous bool   `json:"anonymous"`
}
