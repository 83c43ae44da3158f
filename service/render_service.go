package service

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"
	"strings"

	"outfit-studio/models"
)

const (
	canvasWidth  = 300.0
	canvasHeight = 600.0
)

var colorPattern = regexp.MustCompile(`^(#[0-9a-fA-F]{3,8}|[a-zA-Z]{3,20})$`)

// ArtworkProvider resolves optional sticker artwork for a region
type ArtworkProvider interface {
	ArtworkURL(region models.BodyRegion) (string, bool)
}

// RenderService renders the avatar and its applied items as SVG
type RenderService struct {
	artwork ArtworkProvider
	tmpl    *template.Template
}

// NewRenderService creates a new RenderService; artwork may be nil
func NewRenderService(artwork ArtworkProvider) *RenderService {
	return &RenderService{
		artwork: artwork,
		tmpl:    template.Must(template.New("avatar").Parse(avatarTemplate)),
	}
}

type overlayView struct {
	InstanceID string
	Region     string
	Glyph      string
	Title      string
	ArtworkURL string
	X          string
	Y          string
	Scale      string
}

type avatarView struct {
	Width      string
	Height     string
	Root       string
	SkinTone   string
	HairColor  string
	EyeColor   string
	HeadRX     string
	HeadRY     string
	TorsoWidth string
	TorsoX     string
	HairPath   string
	EyeRY      string
	Overlays   []overlayView
}

// RenderSVG renders the base avatar with the applied items drawn in layer order
func (s *RenderService) RenderSVG(avatar models.BaseAvatarConfig, items []models.AppliedItem) ([]byte, error) {
	view := avatarView{
		Width:     num(canvasWidth),
		Height:    num(canvasHeight),
		Root:      rootTransform(avatar.AgeGroup),
		SkinTone:  safeColor(avatar.SkinTone, "#f1c27d"),
		HairColor: safeColor(avatar.HairColor, "#2c1b18"),
		EyeColor:  safeColor(avatar.EyeColor, "#3b2f2f"),
		HairPath:  hairPath(avatar.HairStyle),
		EyeRY:     eyeHeight(avatar.EyeStyle),
	}

	headRX, headRY := headShape(avatar.FaceStyle)
	view.HeadRX, view.HeadRY = num(headRX), num(headRY)

	torso := torsoWidth(avatar.BodyType)
	view.TorsoWidth = num(torso)
	view.TorsoX = num(canvasWidth/2 - torso/2)

	for _, item := range items {
		overlay := overlayView{
			InstanceID: item.InstanceID,
			Region:     string(item.Region),
			Glyph:      item.Glyph,
			Title:      item.Item.Title,
			X:          num(item.Position.X / 100 * canvasWidth),
			Y:          num(item.Position.Y / 100 * canvasHeight),
			Scale:      num(item.Scale),
		}
		if s.artwork != nil {
			if url, ok := s.artwork.ArtworkURL(item.Region); ok {
				overlay.ArtworkURL = url
			}
		}
		view.Overlays = append(view.Overlays, overlay)
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("failed to render avatar svg: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderPreviewHTML wraps the SVG in a page sized for screenshots
func (s *RenderService) RenderPreviewHTML(avatar models.BaseAvatarConfig, items []models.AppliedItem) ([]byte, error) {
	svg, err := s.RenderSVG(avatar, items)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString(`<!DOCTYPE html><html><head><meta charset="utf-8"><style>html,body{margin:0;background:#fff}</style></head><body>`)
	buf.Write(svg)
	buf.WriteString(`</body></html>`)
	return buf.Bytes(), nil
}

func num(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}

func safeColor(value, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if colorPattern.MatchString(trimmed) {
		return trimmed
	}
	return fallback
}

// rootTransform shrinks kid avatars around the feet
func rootTransform(ageGroup string) string {
	if ageGroup == models.AgeGroupKid {
		return "translate(30 120) scale(0.8)"
	}
	return "translate(0 0)"
}

func headShape(faceStyle string) (float64, float64) {
	switch strings.ToLower(faceStyle) {
	case "round":
		return 42, 42
	case "square":
		return 44, 40
	case "long":
		return 36, 48
	default: // oval
		return 38, 45
	}
}

func torsoWidth(bodyType string) float64 {
	switch strings.ToLower(bodyType) {
	case "slim":
		return 80
	case "athletic":
		return 100
	case "curvy", "plus":
		return 115
	default:
		return 92
	}
}

func eyeHeight(eyeStyle string) string {
	switch strings.ToLower(eyeStyle) {
	case "almond":
		return "3"
	case "sleepy":
		return "2"
	default: // round
		return "5"
	}
}

func hairPath(hairStyle string) string {
	switch strings.ToLower(hairStyle) {
	case "long":
		return "M105 110 Q150 40 195 110 L200 230 L180 230 L180 120 L120 120 L120 230 L100 230 Z"
	case "bun":
		return "M110 105 Q150 55 190 105 Z M135 62 a15 15 0 1 0 30 0 a15 15 0 1 0 -30 0"
	case "curly":
		return "M105 115 q-10 -30 15 -45 q10 -25 30 -15 q20 -10 30 15 q25 15 15 45 Z"
	case "bald":
		return ""
	default: // short
		return "M108 108 Q150 50 192 108 Q150 88 108 108 Z"
	}
}

const avatarTemplate = `<svg xmlns="http://www.w3.org/2000/svg" width="{{.Width}}" height="{{.Height}}" viewBox="0 0 {{.Width}} {{.Height}}">
<g transform="{{.Root}}">
<g class="base">
<rect x="{{.TorsoX}}" y="170" width="{{.TorsoWidth}}" height="170" rx="30" fill="{{.SkinTone}}"/>
<rect x="118" y="330" width="26" height="190" rx="12" fill="{{.SkinTone}}"/>
<rect x="156" y="330" width="26" height="190" rx="12" fill="{{.SkinTone}}"/>
<rect x="141" y="145" width="18" height="30" fill="{{.SkinTone}}"/>
<ellipse cx="150" cy="115" rx="{{.HeadRX}}" ry="{{.HeadRY}}" fill="{{.SkinTone}}"/>
{{if .HairPath}}<path d="{{.HairPath}}" fill="{{.HairColor}}"/>{{end}}
<ellipse cx="135" cy="115" rx="5" ry="{{.EyeRY}}" fill="{{.EyeColor}}"/>
<ellipse cx="165" cy="115" rx="5" ry="{{.EyeRY}}" fill="{{.EyeColor}}"/>
<path d="M138 135 Q150 145 162 135" stroke="#7a3b2e" stroke-width="3" fill="none"/>
</g>
{{range .Overlays}}<g class="sticker" data-instance="{{.InstanceID}}" data-region="{{.Region}}" transform="translate({{.X}} {{.Y}}) scale({{.Scale}})">
<title>{{.Title}}</title>
{{if .ArtworkURL}}<image href="{{.ArtworkURL}}" x="-40" y="-40" width="80" height="80"/>{{else}}<text text-anchor="middle" dominant-baseline="central" font-size="64">{{.Glyph}}</text>{{end}}
</g>
{{end}}</g>
</svg>
`
