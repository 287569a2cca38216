package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewBouncingSpheres creates the random sphere field: moving diffuse spheres,
// metal and glass spheres around three large feature spheres on a checkered ground
func NewBouncingSpheres() *Scene {
	sampler := core.NewSeededSampler(1, 0)
	checker := material.NewCheckerColors(0.32, core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9))

	objects := []core.Hittable{
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewTexturedLambertian(checker)),
	}

	avoid := core.NewVec3(4, 0.2, 0)
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := sampler.Get1D()
			center := core.NewVec3(float64(a)+0.9*sampler.Get1D(), 0.2, float64(b)+0.9*sampler.Get1D())
			if center.Subtract(avoid).Length() <= 0.9 {
				continue
			}

			switch {
			case chooseMat < 0.8:
				albedo := sampler.Get3D().MultiplyVec(sampler.Get3D())
				center2 := center.Add(core.NewVec3(0, randomRange(sampler, 0, 0.5), 0))
				objects = append(objects, geometry.NewMovingSphere(center, center2, 0.2, material.NewLambertian(albedo)))
			case chooseMat < 0.95:
				albedo := randomColor(sampler, 0.5, 1)
				fuzz := randomRange(sampler, 0, 0.5)
				objects = append(objects, geometry.NewSphere(center, 0.2, material.NewMetal(albedo, fuzz)))
			default:
				objects = append(objects, geometry.NewSphere(center, 0.2, material.NewDielectric(1.5)))
			}
		}
	}

	objects = append(objects,
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)),
	)

	camera := bookCamera(1200, 16.0/9.0, 500, core.NewVec3(13, 2, 3), core.NewVec3(0, 0, 0), 20, skyBlue)
	camera.DefocusAngle = 0.6
	camera.FocusDist = 10.0

	return newScene("bouncing-spheres", objects, nil, camera)
}

// NewCheckeredSpheres creates two large spheres sharing one spatial checker texture
func NewCheckeredSpheres() *Scene {
	checker := material.NewCheckerColors(0.32, core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9))
	surface := material.NewTexturedLambertian(checker)

	objects := []core.Hittable{
		geometry.NewSphere(core.NewVec3(0, -10, 0), 10, surface),
		geometry.NewSphere(core.NewVec3(0, 10, 0), 10, surface),
	}

	camera := bookCamera(1200, 16.0/9.0, 500, core.NewVec3(13, 2, 3), core.NewVec3(0, 0, 0), 20, skyBlue)
	return newScene("checkered-spheres", objects, nil, camera)
}

// EarthTexture is the image mapped onto the globe scenes
const EarthTexture = "earthmap.jpg"

// NewEarth creates a single globe textured with an equirectangular earth map.
// A missing image renders the fallback texture.
func NewEarth() *Scene {
	earth := material.NewTexturedLambertian(material.NewImageTextureFromFile(EarthTexture))
	objects := []core.Hittable{
		geometry.NewSphere(core.NewVec3(0, 0, 0), 2, earth),
	}

	camera := bookCamera(400, 16.0/9.0, 100, core.NewVec3(0, 0, 12), core.NewVec3(0, 0, 0), 20, skyBlue)
	return newScene("earth", objects, nil, camera)
}

// NewEmissiveSphere creates a single unit light sphere on black, useful for
// checking silhouettes and exposure
func NewEmissiveSphere() *Scene {
	light := geometry.NewSphere(core.NewVec3(0, 0, 0), 1, material.NewDiffuseLight(core.NewVec3(1, 1, 1)))
	camera := bookCamera(64, 1.0, 4, core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 0), 30, black)
	camera.MaxDepth = 10
	return newScene("emissive-sphere", []core.Hittable{light}, nil, camera)
}
