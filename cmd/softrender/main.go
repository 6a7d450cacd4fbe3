// softrender renders a wavefront OBJ (or glTF/GLB) model to a PNG using
// either the rasterizer or the path tracer.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/taigrr/softrender/internal/config"
	"github.com/taigrr/softrender/internal/imageio"
	"github.com/taigrr/softrender/internal/loader"
	"github.com/taigrr/softrender/internal/renderer"
	"github.com/taigrr/softrender/pkg/colormodel"
	"github.com/taigrr/softrender/pkg/math3d"
	"github.com/taigrr/softrender/pkg/raytrace"
	"github.com/taigrr/softrender/pkg/scene"
)

func main() {
	root := newRootCmd()
	if err := fang.Execute(context.Background(), root); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := config.Default()
	var camPos []float64
	var shaderName string

	cmd := &cobra.Command{
		Use:   "softrender <model.obj|model.gltf|model.glb>",
		Short: "Render a triangle mesh with a CPU rasterizer or path tracer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.ModelPath = args[0]
			if len(camPos) == 3 {
				opts.CameraPosition = math3d.V3(camPos[0], camPos[1], camPos[2])
			}
			switch shaderName {
			case "zshader":
				opts.Shader = config.ShaderZ
			case "fogshader":
				opts.Shader = config.ShaderFog
			}
			return run(opts)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&opts.Width, "width", opts.Width, "render-target pixel width")
	flags.IntVar(&opts.Height, "height", opts.Height, "render-target pixel height")
	flags.Float64SliceVar(&camPos, "camera-position", nil, "camera world position, x,y,z")
	flags.Float64Var(&opts.CameraTheta, "camera-theta", opts.CameraTheta, "camera yaw, degrees")
	flags.Float64Var(&opts.CameraPhi, "camera-phi", opts.CameraPhi, "camera pitch, degrees")
	flags.Float64Var(&opts.CameraAngleOfView, "camera-angle-of-view", opts.CameraAngleOfView, "vertical field of view, degrees")
	flags.Float64Var(&opts.CameraZNear, "camera-z-near", opts.CameraZNear, "near clip plane")
	flags.Float64Var(&opts.CameraZFar, "camera-z-far", opts.CameraZFar, "far clip plane")
	flags.BoolVar(&opts.DisableDepth, "disable-depth", opts.DisableDepth, "run the rasterizer without a depth buffer")
	flags.StringVar(&opts.ResultPath, "result-path", opts.ResultPath, "output PNG path")
	flags.StringVar(&opts.DepthExportPath, "depth-export-path", opts.DepthExportPath, "optional raw depth dump path")
	flags.BoolVar(&opts.UseRaytracer, "raytrace", opts.UseRaytracer, "render with the path tracer instead of the rasterizer")
	flags.IntVar(&opts.RaytracingDepth, "raytracing-depth", opts.RaytracingDepth, "max ray recursion depth")
	flags.IntVar(&opts.AccumulationNum, "accumulation-num", opts.AccumulationNum, "number of jittered frames to accumulate")
	flags.StringVar(&shaderName, "shader", "", "alternate pixel shader: zshader or fogshader")
	flags.Float64Var(&opts.LPSBias, "lps-bias", opts.LPSBias, "bias for the z/fog shaders")
	flags.Float64Var(&opts.LPSFade, "lps-fade", opts.LPSFade, "fade rate for the z/fog shaders")

	return cmd
}

func run(opts config.RenderOptions) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	mesh, err := loadMesh(opts.ModelPath)
	if err != nil {
		return fmt.Errorf("softrender: load model: %w", err)
	}
	logger.Info("loaded model", "path", opts.ModelPath, "shapes", len(mesh.Shapes))

	camera := scene.NewCamera()
	camera.SetPosition(opts.CameraPosition)
	camera.SetTheta(opts.CameraTheta)
	camera.SetPhi(opts.CameraPhi)
	camera.SetFOV(opts.CameraAngleOfView)
	camera.SetZNear(opts.CameraZNear)
	camera.SetZFar(opts.CameraZFar)
	camera.SetViewport(opts.Width, opts.Height)

	if opts.UseRaytracer {
		rr := renderer.NewRayTraceRenderer(mesh, camera, opts, defaultLights(camera))
		logger.Info("path tracing", "depth", opts.RaytracingDepth, "accumulation", opts.AccumulationNum)
		rr.Render()
		if err := imageio.WritePNG(opts.ResultPath, opts.Width, opts.Height, rr.ColorTarget()); err != nil {
			return fmt.Errorf("softrender: write result: %w", err)
		}
		return nil
	}

	rr := renderer.NewRasterRenderer(mesh, camera, opts)
	logger.Info("rasterizing", "depth_enabled", !opts.DisableDepth)
	rr.Render()

	if err := imageio.WritePNG(opts.ResultPath, opts.Width, opts.Height, rr.ColorTarget()); err != nil {
		return fmt.Errorf("softrender: write result: %w", err)
	}
	if opts.DepthExportPath != "" && rr.DepthTarget() != nil {
		if err := imageio.WriteDepth(opts.DepthExportPath, opts.Width, opts.Height, rr.DepthTarget()); err != nil {
			return fmt.Errorf("softrender: write depth: %w", err)
		}
	}
	return nil
}

func loadMesh(path string) (*scene.Mesh, error) {
	switch ext := extOf(path); ext {
	case ".gltf", ".glb":
		return loader.LoadGLTF(path)
	default:
		return loader.LoadOBJ(path)
	}
}

func extOf(path string) string {
	for i := len(path) - 1; i >= 0 && path[i] != '/'; i-- {
		if path[i] == '.' {
			return path[i:]
		}
	}
	return ""
}

func defaultLights(camera *scene.Camera) []raytrace.Light {
	return []raytrace.Light{
		{Position: camera.Position.Add(math3d.V3(5, 10, 5)), Color: colormodel.White.Scale(3)},
	}
}
