package dto

// CreateSparkRequest - тело запроса на создание спарка. Координаты
// опциональны: если геолокация на клиенте не сработала, сервер
// подставляет дефолтную опорную точку.
type CreateSparkRequest struct {
	Name             string   `json:"name"`
	Lat              *float64 `json:"lat"`
	Lng              *float64 `json:"lng"`
	AnonymousAllowed bool     `json:"anonymous_allowed"`
	Icebreaker       string   `json:"icebreaker"`
}
