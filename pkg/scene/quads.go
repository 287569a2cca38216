package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewQuads creates five colored quads arranged as an open box facing the camera
func NewQuads() *Scene {
	leftRed := material.NewLambertian(core.NewVec3(1.0, 0.2, 0.2))
	backGreen := material.NewLambertian(core.NewVec3(0.2, 1.0, 0.2))
	rightBlue := material.NewLambertian(core.NewVec3(0.2, 0.2, 1.0))
	upperOrange := material.NewLambertian(core.NewVec3(1.0, 0.5, 0.0))
	lowerTeal := material.NewLambertian(core.NewVec3(0.2, 0.8, 0.8))

	objects := []core.Hittable{
		geometry.NewQuad(core.NewVec3(-3, -2, 5), core.NewVec3(0, 0, -4), core.NewVec3(0, 4, 0), leftRed),
		geometry.NewQuad(core.NewVec3(-2, -2, 0), core.NewVec3(4, 0, 0), core.NewVec3(0, 4, 0), backGreen),
		geometry.NewQuad(core.NewVec3(3, -2, 1), core.NewVec3(0, 0, 4), core.NewVec3(0, 4, 0), rightBlue),
		geometry.NewQuad(core.NewVec3(-2, 3, 1), core.NewVec3(4, 0, 0), core.NewVec3(0, 0, 4), upperOrange),
		geometry.NewQuad(core.NewVec3(-2, -3, 5), core.NewVec3(4, 0, 0), core.NewVec3(0, 0, -4), lowerTeal),
	}

	camera := bookCamera(400, 1.0, 100, core.NewVec3(0, 0, 9), core.NewVec3(0, 0, 0), 80, skyBlue)
	return newScene("quads", objects, nil, camera)
}

// NewSimpleLight creates two checkered spheres lit only by a sphere light and a quad light
func NewSimpleLight() *Scene {
	checker := material.NewCheckerColors(0.5, core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9))
	surface := material.NewTexturedLambertian(checker)
	diffLight := material.NewDiffuseLight(core.NewVec3(4, 4, 4))

	lightSphere := geometry.NewSphere(core.NewVec3(0, 7, 0), 2, diffLight)
	lightQuad := geometry.NewQuad(core.NewVec3(3, 1, -2), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0), diffLight)

	objects := []core.Hittable{
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, surface),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, surface),
		lightSphere,
		lightQuad,
	}
	lights := []core.Hittable{
		geometry.NewSphere(lightSphere.Center.Origin, lightSphere.Radius, material.Empty{}),
		lightSampler(lightQuad),
	}

	camera := bookCamera(400, 16.0/9.0, 100, core.NewVec3(26, 3, 6), core.NewVec3(0, 2, 0), 20, black)
	return newScene("simple-light", objects, lights, camera)
}
