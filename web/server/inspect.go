package server

import (
	"fmt"
	"math"
	"net/http"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/labstack/echo/v4"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool           `json:"hit"`
	MaterialType string         `json:"materialType,omitempty"`
	Point        [3]float64     `json:"point"`
	Normal       [3]float64     `json:"normal"`
	Distance     float64        `json:"distance"`
	FrontFace    bool           `json:"frontFace"`
	Properties   map[string]any `json:"properties,omitempty"`
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// extractMaterialInfo describes a material with type assertions
func extractMaterialInfo(mat core.Material) (string, map[string]any) {
	properties := make(map[string]any)

	switch m := mat.(type) {
	case *material.Lambertian:
		properties["texture"] = textureName(m.Albedo)
		return "lambertian", properties
	case *material.Metal:
		properties["albedo"] = vecArray(m.Albedo)
		properties["fuzzness"] = m.Fuzzness
		return "metal", properties
	case *material.Dielectric:
		properties["refractiveIndex"] = m.RefractiveIndex
		return "dielectric", properties
	case *material.DiffuseLight:
		properties["texture"] = textureName(m.Emit)
		return "diffuse_light", properties
	case *material.Isotropic:
		properties["texture"] = textureName(m.Albedo)
		return "isotropic", properties
	default:
		return fmt.Sprintf("%T", mat), properties
	}
}

func textureName(t material.Texture) string {
	switch t.(type) {
	case *material.SolidColor:
		return "solid"
	case *material.CheckerTexture:
		return "checker"
	case *material.ImageTexture:
		return "image"
	default:
		return fmt.Sprintf("%T", t)
	}
}

// inspectPixel casts a ray through the center of pixel (x, y) and returns the first hit
func inspectPixel(sceneObj *scene.Scene, config renderer.CameraConfig, x, y int) (*core.HitRecord, bool) {
	camera := renderer.NewCamera(config)

	// Fixed seed so repeated inspections agree on lens position and ray time
	sampler := core.NewSeededSampler(0, 0)
	ray := camera.GetRay(x, y, core.NewVec2(0, 0), sampler)

	return sceneObj.World.Hit(ray, core.NewInterval(0.001, math.Inf(1)), sampler)
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(c echo.Context) error {
	req, err := parseRenderRequest(c.QueryParams())
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid scene parameters: " + err.Error()})
	}

	sceneObj, err := scene.Build(req.Scene)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	config := req.cameraFor(sceneObj)
	camera := renderer.NewCamera(config)

	pixelX, err := parseIntParam(c.QueryParams(), "x", -1, 0, camera.ImageWidth()-1)
	if err != nil || pixelX < 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid x coordinate"})
	}
	pixelY, err := parseIntParam(c.QueryParams(), "y", -1, 0, camera.ImageHeight()-1)
	if err != nil || pixelY < 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid y coordinate"})
	}

	hit, ok := inspectPixel(sceneObj, config, pixelX, pixelY)
	if !ok {
		return c.JSON(http.StatusOK, InspectResponse{Hit: false})
	}

	materialType, materialProps := extractMaterialInfo(hit.Material)
	return c.JSON(http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		Point:        vecArray(hit.P),
		Normal:       vecArray(hit.Normal),
		Distance:     hit.T,
		FrontFace:    hit.FrontFace,
		Properties:   materialProps,
	})
}
