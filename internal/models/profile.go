package models

import "time"

// Avatar is one of the fixed icon names a profile can carry.
type Avatar string

const (
	AvatarSparkles Avatar = "Sparkles"
	AvatarZap      Avatar = "Zap"
	AvatarHeart    Avatar = "Heart"
	AvatarStar     Avatar = "Star"
	AvatarSmile    Avatar = "Smile"
	AvatarSun      Avatar = "Sun"
	AvatarMoon     Avatar = "Moon"
	AvatarCloud    Avatar = "Cloud"
	AvatarCoffee   Avatar = "Coffee"
	AvatarFlame    Avatar = "Flame"
	AvatarGem      Avatar = "Gem"
	AvatarCrown    Avatar = "Crown"
)

// Avatars lists every selectable avatar, in display order.
var Avatars = []Avatar{
	AvatarSparkles, AvatarZap, AvatarHeart, AvatarStar, AvatarSmile, AvatarSun,
	AvatarMoon, AvatarCloud, AvatarCoffee, AvatarFlame, AvatarGem, AvatarCrown,
}

// avatarGlyphs maps each avatar to the glyph clients render for it.
var avatarGlyphs = map[Avatar]string{
	AvatarSparkles: "✨",
	AvatarZap:      "⚡",
	AvatarHeart:    "❤",
	AvatarStar:     "★",
	AvatarSmile:    "☺",
	AvatarSun:      "☀",
	AvatarMoon:     "☾",
	AvatarCloud:    "☁",
	AvatarCoffee:   "☕",
	AvatarFlame:    "🔥",
	AvatarGem:      "💎",
	AvatarCrown:    "♛",
}

// Valid reports whether a belongs to the closed avatar set.
func (a Avatar) Valid() bool {
	_, ok := avatarGlyphs[a]
	return ok
}

// Glyph returns the rendering glyph for the avatar, or the Sparkles glyph
// for anything outside the set.
func (a Avatar) Glyph() string {
	if g, ok := avatarGlyphs[a]; ok {
		return g
	}
	return avatarGlyphs[AvatarSparkles]
}

// Profile is a user's public identity. Its ID is the owning user's ID;
// the row is created once, when onboarding completes.
type Profile struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Username  string    `json:"username" gorm:"uniqueIndex;type:varchar(20)" validate:"required,min=3,max=20"`
	Avatar    Avatar    `json:"avatar" gorm:"type:varchar(20)" validate:"required,oneof=Sparkles Zap Heart Star Smile Sun Moon Cloud Coffee Flame Gem Crown"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
