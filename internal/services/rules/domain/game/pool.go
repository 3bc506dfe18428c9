package game

// ElementalPool holds points split by element.
type ElementalPool struct {
	Physical int `json:"physical,omitempty" yaml:"physical,omitempty"`
	Fire     int `json:"fire,omitempty" yaml:"fire,omitempty"`
	Ice      int `json:"ice,omitempty" yaml:"ice,omitempty"`
	ColdFire int `json:"cold_fire,omitempty" yaml:"cold_fire,omitempty"`
}

// Get returns the points held for an element.
func (p ElementalPool) Get(e Element) int {
	switch e {
	case ElementFire:
		return p.Fire
	case ElementIce:
		return p.Ice
	case ElementColdFire:
		return p.ColdFire
	default:
		return p.Physical
	}
}

// Plus returns a pool with amount added to the element.
func (p ElementalPool) Plus(e Element, amount int) ElementalPool {
	switch e {
	case ElementFire:
		p.Fire += amount
	case ElementIce:
		p.Ice += amount
	case ElementColdFire:
		p.ColdFire += amount
	default:
		p.Physical += amount
	}
	return p
}

// Add sums two pools.
func (p ElementalPool) Add(o ElementalPool) ElementalPool {
	return ElementalPool{
		Physical: p.Physical + o.Physical,
		Fire:     p.Fire + o.Fire,
		Ice:      p.Ice + o.Ice,
		ColdFire: p.ColdFire + o.ColdFire,
	}
}

// Sub subtracts o from p; ok is false when any element would go negative.
func (p ElementalPool) Sub(o ElementalPool) (ElementalPool, bool) {
	out := ElementalPool{
		Physical: p.Physical - o.Physical,
		Fire:     p.Fire - o.Fire,
		Ice:      p.Ice - o.Ice,
		ColdFire: p.ColdFire - o.ColdFire,
	}
	if out.Physical < 0 || out.Fire < 0 || out.Ice < 0 || out.ColdFire < 0 {
		return p, false
	}
	return out, true
}

// Total sums every element.
func (p ElementalPool) Total() int {
	return p.Physical + p.Fire + p.Ice + p.ColdFire
}

// IsZero reports whether the pool is empty.
func (p ElementalPool) IsZero() bool {
	return p == ElementalPool{}
}

// Negative reports whether any element is below zero.
func (p ElementalPool) Negative() bool {
	return p.Physical < 0 || p.Fire < 0 || p.Ice < 0 || p.ColdFire < 0
}

// MaxCrystals is the per-color crystal cap.
const MaxCrystals = 3

// Crystals counts stored crystals per basic color.
type Crystals struct {
	Red   int `json:"red,omitempty"`
	Blue  int `json:"blue,omitempty"`
	Green int `json:"green,omitempty"`
	White int `json:"white,omitempty"`
}

// Get returns the crystal count for a color; non-basic colors are zero.
func (c Crystals) Get(color Color) int {
	switch color {
	case ColorRed:
		return c.Red
	case ColorBlue:
		return c.Blue
	case ColorGreen:
		return c.Green
	case ColorWhite:
		return c.White
	default:
		return 0
	}
}

// With returns crystals with the color's count set to n.
func (c Crystals) With(color Color, n int) Crystals {
	switch color {
	case ColorRed:
		c.Red = n
	case ColorBlue:
		c.Blue = n
	case ColorGreen:
		c.Green = n
	case ColorWhite:
		c.White = n
	}
	return c
}

// Total sums all crystals.
func (c Crystals) Total() int {
	return c.Red + c.Blue + c.Green + c.White
}
