package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewFinalScene creates the showcase scene: a field of random-height boxes,
// a moving sphere, glass, metal, a subsurface-like glass sphere filled with
// blue fog, global mist, an earth globe and a rotated cluster of small spheres
func NewFinalScene() *Scene {
	sampler := core.NewSeededSampler(9, 0)

	ground := material.NewLambertian(core.NewVec3(0.48, 0.83, 0.53))
	const boxesPerSide = 20
	groundBoxes := make([]core.Hittable, 0, boxesPerSide*boxesPerSide)
	for i := 0; i < boxesPerSide; i++ {
		for j := 0; j < boxesPerSide; j++ {
			w := 100.0
			x0 := -1000.0 + float64(i)*w
			z0 := -1000.0 + float64(j)*w
			y1 := randomRange(sampler, 1, 101)
			groundBoxes = append(groundBoxes, geometry.NewBox(core.NewVec3(x0, 0, z0), core.NewVec3(x0+w, y1, z0+w), ground))
		}
	}

	light := material.NewDiffuseLight(core.NewVec3(7, 7, 7))
	lightQuad := geometry.NewQuad(core.NewVec3(123, 554, 147), core.NewVec3(300, 0, 0), core.NewVec3(0, 0, 265), light)

	center1 := core.NewVec3(400, 400, 200)
	center2 := center1.Add(core.NewVec3(30, 0, 0))

	glassBall := geometry.NewSphere(core.NewVec3(360, 150, 145), 70, material.NewDielectric(1.5))
	mist := geometry.NewSphere(core.NewVec3(0, 0, 0), 5000, material.NewDielectric(1.5))

	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	const clusterSize = 1000
	cluster := make([]core.Hittable, 0, clusterSize)
	for i := 0; i < clusterSize; i++ {
		cluster = append(cluster, geometry.NewSphere(randomColor(sampler, 0, 165), 10, white))
	}

	checker := material.NewCheckerColors(10, core.NewVec3(0.9, 0.9, 0.9), core.NewVec3(0.2, 0.2, 0.2))

	objects := []core.Hittable{
		geometry.NewBVH(groundBoxes),
		lightQuad,
		geometry.NewMovingSphere(center1, center2, 50, material.NewLambertian(core.NewVec3(0.7, 0.3, 0.1))),
		geometry.NewSphere(core.NewVec3(260, 150, 45), 50, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(0, 150, 145), 50, material.NewMetal(core.NewVec3(0.8, 0.8, 0.9), 1.0)),
		glassBall,
		geometry.NewConstantMedium(glassBall, 0.2, material.NewIsotropic(core.NewVec3(0.2, 0.4, 0.9))),
		geometry.NewConstantMedium(mist, 0.0001, material.NewIsotropic(core.NewVec3(1, 1, 1))),
		geometry.NewSphere(core.NewVec3(400, 200, 400), 100,
			material.NewTexturedLambertian(material.NewImageTextureFromFile(EarthTexture))),
		geometry.NewSphere(core.NewVec3(220, 280, 300), 80, material.NewTexturedLambertian(checker)),
		geometry.NewTranslate(geometry.NewRotateY(geometry.NewBVH(cluster), 15), core.NewVec3(-100, 270, 395)),
	}
	lights := []core.Hittable{lightSampler(lightQuad)}

	camera := bookCamera(400, 1.0, 250, core.NewVec3(478, 278, -600), core.NewVec3(278, 278, 0), 40, black)
	camera.MaxDepth = 4

	return newScene("final-scene", objects, lights, camera)
}
