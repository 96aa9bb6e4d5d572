package geo

import "math"

// Один градус широты/долготы считаем равным 111 км. Плоское приближение:
// для "рядом со мной" на коротких дистанциях этого достаточно, геодезическую
// точность здесь не обещаем. Формулу менять нельзя - от нее зависит
// совместимость с клиентами.
const kmPerDegree = 111.0

// DistanceKm возвращает приближенное расстояние между двумя точками в км.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := lat1 - lat2
	dLng := lng1 - lng2
	return math.Sqrt(dLat*dLat+dLng*dLng) * kmPerDegree
}

// WithinRadius проверяет, попадает ли точка в радиус radiusKm от origin.
func WithinRadius(originLat, originLng, lat, lng, radiusKm float64) bool {
	return DistanceKm(originLat, originLng, lat, lng) <= radiusKm
}
