// Package device resolves the capability tier once per session and turns it
// into an immutable Profile of effect budgets. Physics never reads it.
package device

import (
	"fmt"
	"regexp"
	"strings"
)

// Tier is the coarse device class.
type Tier int

const (
	Desktop Tier = iota
	Mobile
)

// String returns the tier name.
func (t Tier) String() string {
	switch t {
	case Mobile:
		return "mobile"
	case Desktop:
		return "desktop"
	default:
		return "unknown"
	}
}

// ParseTier parses "mobile", "desktop" or "auto". Auto reports ok=false so
// the caller falls back to probing.
func ParseTier(s string) (tier Tier, ok bool, err error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return Desktop, false, nil
	case "mobile":
		return Mobile, true, nil
	case "desktop":
		return Desktop, true, nil
	default:
		return Desktop, false, fmt.Errorf("device: unknown tier %q", s)
	}
}

// Profile is the immutable per-session capacity lookup.
type Profile struct {
	Tier                Tier   `json:"-" yaml:"-"`
	TierName            string `json:"tier" yaml:"tier"`
	MaxParticles        int    `json:"maxParticles" yaml:"max_particles"`
	BackgroundParticles int    `json:"bgParticles" yaml:"bg_particles"`
	TouchControls       bool   `json:"touchControls" yaml:"touch_controls"`
}

// ProfileFor returns the fixed budgets of a tier.
func ProfileFor(t Tier) Profile {
	if t == Mobile {
		return Profile{
			Tier:                Mobile,
			TierName:            Mobile.String(),
			MaxParticles:        400,
			BackgroundParticles: 30,
			TouchControls:       true,
		}
	}
	return Profile{
		Tier:                Desktop,
		TierName:            Desktop.String(),
		MaxParticles:        2000,
		BackgroundParticles: 100,
		TouchControls:       false,
	}
}

// Capabilities carries the raw signals reported by the host.
type Capabilities struct {
	MaxTouchPoints int    `json:"maxTouchPoints"`
	CoarsePointer  bool   `json:"coarsePointer"`
	UserAgent      string `json:"userAgent"`
}

// mobileAgent matches browser and SSH client identifiers of handheld devices.
var mobileAgent = regexp.MustCompile(`(?i)android|iphone|ipad|ipod|mobile|termius|juicessh|blink`)

// Resolve decides the tier from reported capabilities: a touch screen with a coarse pointer,
// or a handheld user agent, means Mobile.
func Resolve(p Capabilities) Tier {
	if p.MaxTouchPoints > 0 && p.CoarsePointer {
		return Mobile
	}
	if p.UserAgent != "" && mobileAgent.MatchString(p.UserAgent) {
		return Mobile
	}
	return Desktop
}

// ResolveProfile resolves a forced tier name, falling back to the capabilities.
func ResolveProfile(forced string, p Capabilities) (Profile, error) {
	tier, ok, err := ParseTier(forced)
	if err != nil {
		return Profile{}, err
	}
	if !ok {
		tier = Resolve(p)
	}
	return ProfileFor(tier), nil
}
