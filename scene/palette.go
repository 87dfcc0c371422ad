package scene

import "strings"

// BrickColor is one entry of the host's fixed color palette.
type BrickColor struct {
	Number int
	Name   string
	Color  Color3
}

// String returns the palette name.
func (b BrickColor) String() string {
	return b.Name
}

// palette is the default palette, a fixed name/number/color table. Channel
// values are stored normalized to [0, 1].
var palette = []BrickColor{
	brick(1, "White", 242, 243, 243),
	brick(2, "Grey", 161, 165, 162),
	brick(3, "Light yellow", 249, 233, 153),
	brick(5, "Brick yellow", 215, 197, 154),
	brick(18, "Nougat", 204, 142, 105),
	brick(21, "Bright red", 196, 40, 28),
	brick(23, "Bright blue", 13, 105, 172),
	brick(24, "Bright yellow", 245, 205, 48),
	brick(26, "Black", 27, 42, 53),
	brick(28, "Dark green", 40, 127, 71),
	brick(29, "Medium green", 161, 196, 140),
	brick(37, "Bright green", 75, 151, 75),
	brick(38, "Dark orange", 160, 95, 53),
	brick(45, "Light blue", 180, 210, 228),
	brick(101, "Medium red", 238, 196, 182),
	brick(102, "Medium blue", 110, 153, 202),
	brick(104, "Bright violet", 107, 50, 124),
	brick(106, "Bright orange", 218, 133, 65),
	brick(107, "Bright bluish green", 0, 143, 156),
	brick(119, "Br. yellowish green", 164, 189, 71),
	brick(125, "Light orange", 234, 184, 146),
	brick(135, "Sand blue", 116, 134, 157),
	brick(141, "Earth green", 39, 70, 45),
	brick(151, "Sand green", 120, 144, 130),
	brick(153, "Sand red", 149, 121, 119),
	brick(192, "Reddish brown", 105, 64, 40),
	brick(194, "Medium stone grey", 163, 162, 165),
	brick(199, "Dark stone grey", 99, 95, 98),
	brick(208, "Light stone grey", 229, 228, 223),
	brick(217, "Brown", 124, 92, 70),
	brick(226, "Cool yellow", 253, 234, 141),
	brick(1001, "Institutional white", 248, 248, 248),
	brick(1002, "Mid gray", 205, 205, 205),
	brick(1003, "Really black", 17, 17, 17),
	brick(1004, "Really red", 255, 0, 0),
	brick(1009, "New Yeller", 255, 255, 0),
	brick(1010, "Really blue", 0, 0, 255),
	brick(1011, "Navy blue", 0, 32, 96),
	brick(1012, "Deep blue", 33, 84, 185),
	brick(1013, "Cyan", 4, 175, 236),
	brick(1016, "Pink", 255, 102, 204),
	brick(1020, "Lime green", 0, 255, 0),
	brick(1021, "Camo", 58, 125, 21),
	brick(1022, "Grime", 127, 142, 100),
	brick(1023, "Lavender", 140, 91, 156),
}

func brick(number int, name string, r, g, b float64) BrickColor {
	return BrickColor{Number: number, Name: name, Color: Color3{r / 255, g / 255, b / 255}}
}

// BrickColorByName looks up a palette entry by name, case-insensitively.
func BrickColorByName(name string) (BrickColor, bool) {
	for _, b := range palette {
		if strings.EqualFold(b.Name, name) {
			return b, true
		}
	}
	return BrickColor{}, false
}

// BrickColorByNumber looks up a palette entry by palette number.
func BrickColorByNumber(number int) (BrickColor, bool) {
	for _, b := range palette {
		if b.Number == number {
			return b, true
		}
	}
	return BrickColor{}, false
}

// NearestBrickColor returns the palette entry closest to c by squared RGB
// distance. Channels of c are expected normalized to [0, 1]; values above 1
// are treated as 0-255 and scaled down first.
func NearestBrickColor(c Color3) BrickColor {
	if c.R > 1 || c.G > 1 || c.B > 1 {
		c = Color3{c.R / 255, c.G / 255, c.B / 255}
	}
	best := palette[0]
	bestDist := distSq(c, best.Color)
	for _, b := range palette[1:] {
		if d := distSq(c, b.Color); d < bestDist {
			best, bestDist = b, d
		}
	}
	return best
}

func distSq(a, b Color3) float64 {
	dr, dg, db := a.R-b.R, a.G-b.G, a.B-b.B
	return dr*dr + dg*dg + db*db
}
