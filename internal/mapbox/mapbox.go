package mapbox

import "errors"

const (
	DefaultStyle = "mapbox://styles/mapbox/streets-v12"
	DefaultZoom  = 12
)

// DefaultCenter is lower Manhattan as [lon, lat].
var DefaultCenter = [2]float64{-74.006, 40.7128}

var ErrMissingAccessToken = errors.New("mapbox: missing access token")

// Settings is the static map configuration handed to clients.
type Settings struct {
	AccessToken string     `json:"access_token"`
	Style       string     `json:"style"`
	Center      [2]float64 `json:"center"`
	Zoom        float64    `json:"zoom"`
}

func New(accessToken string) (Settings, error) {
	if accessToken == "" {
		return Settings{}, ErrMissingAccessToken
	}
	return Settings{
		AccessToken: accessToken,
		Style:       DefaultStyle,
		Center:      DefaultCenter,
		Zoom:        DefaultZoom,
	}, nil
}

// Override replaces the default view with non-zero values. center must hold
// exactly [lon, lat] to take effect.
func (s Settings) Override(style string, center []float64, zoom float64) Settings {
	if style != "" {
		s.Style = style
	}
	if len(center) == 2 {
		s.Center = [2]float64{center[0], center[1]}
	}
	if zoom > 0 {
		s.Zoom = zoom
	}
	return s
}
