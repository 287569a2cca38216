package renderer

import (
	"image"
	"math/rand/v2"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
)

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID     int             // Unique tile identifier, row-major over the grid
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
}

// NewTileGrid splits the image into tilesPerAxis × tilesPerAxis tiles.
// Tile extent is ceil(size / tilesPerAxis) per axis, so tiles grow with the
// image; tiles that fall entirely outside a small image are skipped.
func NewTileGrid(width, height, tilesPerAxis int) []Tile {
	tilesPerAxis = max(1, tilesPerAxis)
	tileWidth := max(1, (width+tilesPerAxis-1)/tilesPerAxis) // Ceiling division
	tileHeight := max(1, (height+tilesPerAxis-1)/tilesPerAxis)

	var tiles []Tile
	for tileY := 0; tileY < tilesPerAxis && tileY*tileHeight < height; tileY++ {
		for tileX := 0; tileX < tilesPerAxis && tileX*tileWidth < width; tileX++ {
			x0 := tileX * tileWidth
			y0 := tileY * tileHeight
			x1 := min(x0+tileWidth, width) // Don't exceed image bounds
			y1 := min(y0+tileHeight, height)

			bounds := image.Rect(x0, y0, x1, y1)
			if bounds.Empty() {
				continue
			}
			tiles = append(tiles, Tile{ID: tileY*tilesPerAxis + tileX, Bounds: bounds})
		}
	}

	return tiles
}

// TileRenderer handles the actual rendering of individual tiles using an integrator
type TileRenderer struct {
	camera     *Camera
	integrator integrator.Integrator
	seed       uint64
}

// NewTileRenderer creates a new tile renderer for the given camera and integrator
func NewTileRenderer(camera *Camera, integratorInst integrator.Integrator, seed uint64) *TileRenderer {
	return &TileRenderer{
		camera:     camera,
		integrator: integratorInst,
		seed:       seed,
	}
}

// RenderTile renders every pixel of tile into a new row-major buffer.
// Each pixel reseeds the tile's generator from (seed, pixel index), so
// results do not depend on which worker renders the tile or when.
func (tr *TileRenderer) RenderTile(tile Tile) []core.Vec3 {
	bounds := tile.Bounds
	pixels := make([]core.Vec3, 0, bounds.Dx()*bounds.Dy())

	source := rand.NewPCG(0, 0)
	sampler := core.NewRandomSampler(rand.New(source))
	width := uint64(tr.camera.ImageWidth())

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			pixelIndex := uint64(j)*width + uint64(i)
			source.Seed(tr.seed, splitMix64(pixelIndex))
			pixels = append(pixels, tr.samplePixel(i, j, sampler))
		}
	}
	return pixels
}

// samplePixel averages SamplesPerPixel rays: a stratified sqrt(spp)² grid
// followed by uniformly jittered leftovers
func (tr *TileRenderer) samplePixel(i, j int, sampler core.Sampler) core.Vec3 {
	spp := tr.camera.config.SamplesPerPixel
	grid := tr.camera.sqrtSpp

	var colorAccum core.Vec3
	for sj := 0; sj < grid; sj++ {
		for si := 0; si < grid; si++ {
			offset := tr.camera.stratifiedOffset(si, sj, sampler.Get2D())
			ray := tr.camera.GetRay(i, j, offset, sampler)
			colorAccum = colorAccum.Add(tr.integrator.RayColor(ray, sampler))
		}
	}
	for s := grid * grid; s < spp; s++ {
		ray := tr.camera.GetRay(i, j, uniformOffset(sampler.Get2D()), sampler)
		colorAccum = colorAccum.Add(tr.integrator.RayColor(ray, sampler))
	}

	return colorAccum.Divide(float64(spp))
}

// splitMix64 scrambles consecutive pixel indices into well separated stream seeds
func splitMix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
