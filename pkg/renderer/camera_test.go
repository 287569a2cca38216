package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestNewCamera_ImageHeight(t *testing.T) {
	tests := []struct {
		name       string
		width      int
		aspect     float64
		wantHeight int
	}{
		{"square", 64, 1.0, 64},
		{"16:9", 400, 16.0 / 9.0, 225},
		{"truncates", 100, 3.0, 33},
		{"floor of one", 2, 10.0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultCameraConfig()
			config.ImageWidth = tt.width
			config.AspectRatio = tt.aspect
			camera := NewCamera(config)
			if camera.ImageHeight() != tt.wantHeight {
				t.Errorf("height = %d, want %d", camera.ImageHeight(), tt.wantHeight)
			}
		})
	}
}

func TestNewCamera_NormalizesInvalidConfig(t *testing.T) {
	config := DefaultCameraConfig()
	config.ImageWidth = 0
	config.SamplesPerPixel = -3
	config.MaxDepth = -1
	config.FocusDist = 0
	config.LookFrom = core.NewVec3(0, 0, 4)
	config.LookAt = core.NewVec3(0, 0, 0)

	got := NewCamera(config).Config()
	if got.ImageWidth != 1 {
		t.Errorf("ImageWidth = %d, want 1", got.ImageWidth)
	}
	if got.SamplesPerPixel != 1 {
		t.Errorf("SamplesPerPixel = %d, want 1", got.SamplesPerPixel)
	}
	if got.MaxDepth != 0 {
		t.Errorf("MaxDepth = %d, want 0", got.MaxDepth)
	}
	if got.FocusDist != 4 {
		t.Errorf("FocusDist = %v, want look distance 4", got.FocusDist)
	}
}

func TestCamera_CenterRayPointsAtTarget(t *testing.T) {
	config := DefaultCameraConfig()
	config.ImageWidth = 2 // Pixel corners meet at the image center
	config.LookFrom = core.NewVec3(1, 2, 3)
	config.LookAt = core.NewVec3(1, 2, -7)
	camera := NewCamera(config)
	sampler := core.NewSeededSampler(1, 2)

	// Offset (0.5, 0.5) from pixel (0, 0) lands on the shared corner
	ray := camera.GetRay(0, 0, core.NewVec2(0.5, 0.5), sampler)
	dir := ray.Direction.Normalize()
	want := core.NewVec3(0, 0, -1)
	if dir.Subtract(want).Length() > 1e-9 {
		t.Errorf("center ray direction = %v, want %v", dir, want)
	}
	if ray.Origin != config.LookFrom {
		t.Errorf("origin = %v, want %v without defocus", ray.Origin, config.LookFrom)
	}
	if ray.Time < 0 || ray.Time >= 1 {
		t.Errorf("ray time %v outside [0, 1)", ray.Time)
	}
}

func TestCamera_DegenerateVectorsStayFinite(t *testing.T) {
	tests := []struct {
		name     string
		lookFrom core.Vec3
		lookAt   core.Vec3
		up       core.Vec3
	}{
		{"look from equals look at", core.NewVec3(1, 1, 1), core.NewVec3(1, 1, 1), core.NewVec3(0, 1, 0)},
		{"up parallel to view", core.NewVec3(0, 5, 0), core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultCameraConfig()
			config.LookFrom, config.LookAt, config.Up = tt.lookFrom, tt.lookAt, tt.up
			camera := NewCamera(config)
			ray := camera.GetRay(3, 7, core.NewVec2(0, 0), core.NewSeededSampler(3, 4))
			if !ray.Direction.IsFinite() || ray.Direction.NearZero() {
				t.Errorf("direction = %v, want a finite non-zero vector", ray.Direction)
			}
		})
	}
}

func TestCamera_DefocusDiskMovesOrigin(t *testing.T) {
	config := DefaultCameraConfig()
	config.DefocusAngle = 10
	config.FocusDist = 2
	camera := NewCamera(config)
	sampler := core.NewSeededSampler(5, 6)

	radius := config.FocusDist * math.Tan(core.DegreesToRadians(config.DefocusAngle/2))
	moved := false
	for i := 0; i < 32; i++ {
		ray := camera.GetRay(10, 10, core.NewVec2(0, 0), sampler)
		offset := ray.Origin.Subtract(config.LookFrom)
		if offset.Length() > radius+1e-9 {
			t.Fatalf("origin offset %v exceeds defocus radius %v", offset.Length(), radius)
		}
		if offset.Length() > 0 {
			moved = true
		}
	}
	if !moved {
		t.Error("defocus never moved the ray origin")
	}
}

func TestCamera_StratifiedOffsetsCoverPixel(t *testing.T) {
	config := DefaultCameraConfig()
	config.SamplesPerPixel = 10 // 3x3 grid plus one leftover
	camera := NewCamera(config)
	if camera.sqrtSpp != 3 {
		t.Fatalf("sqrtSpp = %d, want 3", camera.sqrtSpp)
	}

	for sj := 0; sj < 3; sj++ {
		for si := 0; si < 3; si++ {
			lo := camera.stratifiedOffset(si, sj, core.NewVec2(0, 0))
			hi := camera.stratifiedOffset(si, sj, core.NewVec2(0.999999, 0.999999))
			wantLoX := float64(si)/3 - 0.5
			wantLoY := float64(sj)/3 - 0.5
			if math.Abs(lo.X-wantLoX) > 1e-12 || math.Abs(lo.Y-wantLoY) > 1e-12 {
				t.Errorf("cell (%d,%d) low corner = %v, want (%v,%v)", si, sj, lo, wantLoX, wantLoY)
			}
			if hi.X >= wantLoX+1.0/3 || hi.Y >= wantLoY+1.0/3 {
				t.Errorf("cell (%d,%d) high corner %v escapes its cell", si, sj, hi)
			}
		}
	}
}
