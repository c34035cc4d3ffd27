// fallback.go: static fallback images returned when all providers fail
package imageprovider

// fallbackImages is a fixed list of known-good travel images. When
// every provider misses or is unavailable the aggregator serves one of
// these instead of an error; the result is never cached so a later
// retry can still hit a recovered provider.
var fallbackImages = []string{
	"https://images.unsplash.com/photo-1488646953014-85cb44e25828?w=400",
	"https://images.unsplash.com/photo-1477959858617-67f85cf4f1df?w=400",
	"https://images.unsplash.com/photo-1502602898657-3e91760cbb34?w=400",
	"https://images.unsplash.com/photo-1513635269975-59663e0ac1ad?w=400",
	"https://images.unsplash.com/photo-1493976040374-85c8e12f0c0e?w=400",
	"https://images.unsplash.com/photo-1526392060635-9d6019884377?w=400",
}

// fallbackGallerySize is how many fallback images a gallery response
// carries when all providers came back empty.
const fallbackGallerySize = 4

// FallbackImages returns a copy of the static fallback list.
func FallbackImages() []string {
	out := make([]string, len(fallbackImages))
	copy(out, fallbackImages)
	return out
}
