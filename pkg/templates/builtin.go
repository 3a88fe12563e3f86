package templates

import "math"

// Builtin returns a library with the fallback template and the built-in
// router drum ("R").
func Builtin() *Library {
	l := NewLibrary()
	if err := l.Add("R", routerTemplate()); err != nil {
		panic(err)
	}
	return l
}

// unknownTemplate is a unit box standing on y=0: the front panel (+Z) is the
// first surface, the remaining five sides the second.
func unknownTemplate() *Template {
	sideUV := [][3][2]float64{
		{{0, 0}, {1, 0}, {1, 1}},
		{{0, 0}, {1, 1}, {0, 1}},
	}
	var detailUV [][3][2]float64
	for i := 0; i < 5; i++ {
		detailUV = append(detailUV, sideUV...)
	}
	return &Template{
		Name: Unknown,
		Vertices: [][][3]float64{
			{{-.5, 1, .5}, {.5, 1, .5}, {.5, 0, .5}, {-.5, 0, .5}},
			{
				{-.5, 0, .5}, {.5, 0, .5}, {.5, 0, -.5}, {-.5, 0, -.5},
				{-.5, 1, .5}, {.5, 1, .5}, {.5, 1, -.5}, {-.5, 1, -.5},
			},
		},
		Faces: [][][3]int{
			{{0, 3, 2}, {0, 2, 1}},
			{
				{4, 5, 6}, {4, 6, 7}, // top
				{0, 2, 1}, {0, 3, 2}, // bottom
				{2, 3, 7}, {2, 7, 6}, // back
				{1, 2, 6}, {1, 6, 5}, // right
				{3, 0, 4}, {3, 4, 7}, // left
			},
		},
		UVs: [][][3][2]float64{
			{{{0, 1}, {0, 0}, {1, 0}}, {{0, 1}, {1, 0}, {1, 1}}},
			detailUV,
		},
		BaseScale:   [3]float64{1, .4, 1},
		FlatNormals: true,
		Textures:    [2]string{"UNKNOWN_1.png", "UNKNOWN_2.png"},
	}
}

// routerTemplate is an octagonal drum: a top cap fan and smooth sides.
func routerTemplate() *Template {
	const sides = 8
	ring := func(y float64) [][3]float64 {
		out := make([][3]float64, sides)
		for k := range out {
			s, c := math.Sincos(float64(k) * 2 * math.Pi / sides)
			out[k] = [3]float64{s * .5, y, c * .5}
		}
		return out
	}

	top := append([][3]float64{{0, 1, 0}}, ring(1)...)
	var topFaces [][3]int
	var topUV [][3][2]float64
	for k := 0; k < sides; k++ {
		next := (k + 1) % sides
		topFaces = append(topFaces, [3]int{0, k + 1, next + 1})
		topUV = append(topUV, [3][2]float64{
			{.5, .5},
			{.5 + top[k+1][0], .5 + top[k+1][2]},
			{.5 + top[next+1][0], .5 + top[next+1][2]},
		})
	}

	wall := append(ring(0), ring(1)...)
	var wallFaces [][3]int
	var wallUV [][3][2]float64
	for k := 0; k < sides; k++ {
		next := (k + 1) % sides
		u0, u1 := float64(k)/sides, float64(k+1)/sides
		wallFaces = append(wallFaces, [3]int{k, next + sides, k + sides}, [3]int{k, next, next + sides})
		wallUV = append(wallUV,
			[3][2]float64{{u0, 0}, {u1, 1}, {u0, 1}},
			[3][2]float64{{u0, 0}, {u1, 0}, {u1, 1}},
		)
	}

	return &Template{
		Name:      "R",
		Vertices:  [][][3]float64{top, wall},
		Faces:     [][][3]int{topFaces, wallFaces},
		UVs:       [][][3][2]float64{topUV, wallUV},
		BaseScale: [3]float64{1, .4, 1},
		Textures:  [2]string{"R_1.png", "R_2.png"},
	}
}
