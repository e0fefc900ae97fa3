// facet - Terminal 3D scene viewer
// View OBJ and GLB files, or built-in solids, rendered in your terminal.
//
// Controls:
//
//	Mouse drag  - Rotate model (yaw/pitch)
//	Scroll      - Zoom in/out
//	W/S         - Pitch up/down
//	A/D         - Yaw left/right
//	Q/E         - Roll left/right
//	Space       - Apply random impulse
//	R           - Reset rotation and zoom
//	T           - Toggle texture on/off
//	X           - Toggle wireframe overlay
//	N           - Toggle normal overlays
//	G           - Toggle world axes
//	B           - Toggle backface culling
//	Z           - Toggle depth testing
//	M           - Cycle shading mode (flat/gouraud/toon)
//	P           - Toggle perspective/parallel projection
//	L           - Light positioning mode (move mouse, click to set, Esc to cancel)
//	?           - Toggle HUD overlay (FPS, name, poly count, mode status)
//	Esc         - Quit (or cancel light mode)
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/polyfacet/facet/pkg/math3d"
	"github.com/polyfacet/facet/pkg/models"
	"github.com/polyfacet/facet/pkg/render"
)

var (
	shapeName   = flag.String("shape", "icosahedron", "Built-in shape when no model file is given (tetrahedron, cube, octahedron, dodecahedron, icosahedron, sphere)")
	texturePath = flag.String("texture", "", "Path to texture image (PNG/JPG/BMP/TGA)")
	shadingName = flag.String("shading", "gouraud", "Shading mode (flat, gouraud, toon)")
	parallel    = flag.Bool("parallel", false, "Use parallel projection instead of perspective")
	targetFPS   = flag.Int("fps", 60, "Target FPS")
	bgColor     = flag.String("bg", "30,30,40", "Background color (R,G,B)")
	outPath     = flag.String("o", "", "Render a single frame to this file (.png or .webp) and exit")
	outSize     = flag.String("size", "800x600", "Snapshot size for -o (WxH)")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "facet - Terminal 3D scene viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: facet [options] [model.obj|model.glb]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  Mouse drag  - Rotate model\n")
		fmt.Fprintf(os.Stderr, "  Scroll      - Zoom in/out\n")
		fmt.Fprintf(os.Stderr, "  W/S/A/D     - Pitch and yaw\n")
		fmt.Fprintf(os.Stderr, "  Q/E         - Roll left/right\n")
		fmt.Fprintf(os.Stderr, "  Space       - Random spin\n")
		fmt.Fprintf(os.Stderr, "  R           - Reset view\n")
		fmt.Fprintf(os.Stderr, "  T           - Toggle texture\n")
		fmt.Fprintf(os.Stderr, "  X           - Toggle wireframe\n")
		fmt.Fprintf(os.Stderr, "  N           - Toggle normals\n")
		fmt.Fprintf(os.Stderr, "  G           - Toggle axes\n")
		fmt.Fprintf(os.Stderr, "  B/Z         - Toggle culling / depth test\n")
		fmt.Fprintf(os.Stderr, "  M           - Cycle shading mode\n")
		fmt.Fprintf(os.Stderr, "  P           - Toggle projection\n")
		fmt.Fprintf(os.Stderr, "  L           - Position light (mouse to aim, click to set)\n")
		fmt.Fprintf(os.Stderr, "  ?           - Toggle HUD overlay\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	flag.Parse()

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// RotationAxis tracks position and velocity for one rotation axis with
// spring decay.
type RotationAxis struct {
	Position  float64
	Velocity  float64
	velSpring harmonica.Spring
	velAccel  float64 // internal spring velocity (for animating Velocity toward 0)
}

// NewRotationAxis creates an axis with a harmonica spring for smooth
// velocity decay.
func NewRotationAxis(fps int) RotationAxis {
	return RotationAxis{
		// Frequency 4.0 = moderate speed, damping 1.0 = critically damped (no overshoot)
		velSpring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Update applies velocity to position and decays velocity toward 0.
func (a *RotationAxis) Update() {
	a.Position += a.Velocity
	a.Velocity, a.velAccel = a.velSpring.Update(a.Velocity, a.velAccel, 0)
}

// RotationState holds the model rotation with spring physics per axis.
type RotationState struct {
	Pitch, Yaw, Roll RotationAxis
	fps              int
}

func NewRotationState(fps int) *RotationState {
	return &RotationState{
		Pitch: NewRotationAxis(fps),
		Yaw:   NewRotationAxis(fps),
		Roll:  NewRotationAxis(fps),
		fps:   fps,
	}
}

func (r *RotationState) Update() {
	r.Pitch.Update()
	r.Yaw.Update()
	r.Roll.Update()
}

func (r *RotationState) ApplyImpulse(pitch, yaw, roll float64) {
	r.Pitch.Velocity += pitch
	r.Yaw.Velocity += yaw
	r.Roll.Velocity += roll
}

func (r *RotationState) Reset() {
	r.Pitch = NewRotationAxis(r.fps)
	r.Yaw = NewRotationAxis(r.fps)
	r.Roll = NewRotationAxis(r.fps)
}

// ViewState holds UI state that is not part of the render library.
type ViewState struct {
	TextureEnabled bool
	LightMode      bool          // whether in light positioning mode
	LightPos       math3d.Point3 // current light position
	PendingLight   math3d.Point3 // light position while aiming
	ShowHUD        bool
}

const lightDistance = 8.0

func NewViewState() *ViewState {
	return &ViewState{
		TextureEnabled: true,
		LightPos:       math3d.P3(4, 6, 5),
	}
}

// ScreenToLightPos converts a screen position to a light position on a
// hemisphere in front of the model.
func (v *ViewState) ScreenToLightPos(screenX, screenY, width, height int) math3d.Point3 {
	nx := (float64(screenX)/float64(width))*2 - 1
	ny := (float64(screenY)/float64(height))*2 - 1

	lenSq := nx*nx + ny*ny
	if lenSq > 1 {
		l := math.Sqrt(lenSq)
		nx /= l
		ny /= l
		lenSq = 1
	}
	nz := math.Sqrt(1 - lenSq)

	return math3d.P3(nx*lightDistance, -ny*lightDistance, nz*lightDistance)
}

// HUD renders a terminal overlay with model info and mode status.
type HUD struct {
	name      string
	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

func NewHUD(name string) *HUD {
	return &HUD{name: name, fpsTime: time.Now()}
}

// UpdateFPS updates the FPS counter (call once per frame).
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// Render draws the HUD overlay directly to the terminal.
func (h *HUD) Render(width, height, polyCount int, view *ViewState, r *render.SceneRenderer) {
	const (
		reset     = "\x1b[0m"
		bold      = "\x1b[1m"
		dim       = "\x1b[2m"
		bgBlack   = "\x1b[40m"
		fgWhite   = "\x1b[97m"
		fgGreen   = "\x1b[92m"
		fgYellow  = "\x1b[93m"
		fgCyan    = "\x1b[96m"
		clearLine = "\x1b[2K"
	)

	moveTo := func(row, col int) string {
		return fmt.Sprintf("\x1b[%d;%dH", row, col)
	}

	// Always clear the HUD rows so toggling off works.
	fmt.Print(moveTo(1, 1) + clearLine)
	fmt.Print(moveTo(height, 1) + clearLine)

	if view.LightMode {
		lightMsg := fmt.Sprintf("%s%s%s ◉ LIGHT MODE - Move mouse to position, click to set, Esc to cancel %s",
			bgBlack, bold, fgYellow, reset)
		lightCol := max((width-60)/2, 1)
		fmt.Print(moveTo(height, lightCol) + lightMsg)
		return
	}

	if !view.ShowHUD {
		return
	}

	fmt.Print(fmt.Sprintf("%s%s%s %.0f FPS %s", moveTo(1, 1), bgBlack, fgGreen, h.fps, reset))

	titleCol := max((width-len(h.name)-2)/2, 1)
	fmt.Print(moveTo(1, titleCol) + fmt.Sprintf("%s%s%s %s %s", bold, bgBlack, fgWhite, h.name, reset))

	polyCol := max(width-14, 1)
	fmt.Print(moveTo(1, polyCol) + fmt.Sprintf("%s%s%s %d polys %s", bgBlack, fgCyan, bold, polyCount, reset))

	check := func(on bool) string {
		if on {
			return "[✓]"
		}
		return "[ ]"
	}
	modeStr := fmt.Sprintf("%s%s %s Wire  %s Cull  %s Depth  shading: %s %s",
		bgBlack, fgWhite, check(r.Wireframe), check(r.BackfaceCulling), check(r.DepthTest), r.Shading, reset)
	fmt.Print(moveTo(height, 1) + modeStr)

	hint := fmt.Sprintf("%s%s%s L: position light %s", bgBlack, dim, fgYellow, reset)
	hintCol := max(width-18, 1)
	fmt.Print(moveTo(height, hintCol) + hint)
}

// loadMesh loads a model file or falls back to a built-in solid.
func loadMesh(path string) (*models.Mesh, *models.Texture, string, error) {
	if path == "" {
		mesh, err := builtinShape(*shapeName)
		return mesh, nil, *shapeName, err
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".glb", ".gltf":
		mesh, tex, err := models.LoadGLBWithTexture(path)
		if err != nil {
			return nil, nil, "", fmt.Errorf("load model: %w", err)
		}
		return mesh, tex, filepath.Base(path), nil
	case ".obj":
		mesh, err := models.LoadOBJ(path)
		if err != nil {
			return nil, nil, "", fmt.Errorf("load model: %w", err)
		}
		return mesh, nil, filepath.Base(path), nil
	default:
		return nil, nil, "", fmt.Errorf("unsupported format: %s (use .obj or .glb)", ext)
	}
}

func builtinShape(name string) (*models.Mesh, error) {
	switch name {
	case "tetrahedron":
		return models.NewTetrahedron(), nil
	case "cube", "hexahedron":
		return models.NewHexahedron(), nil
	case "octahedron":
		return models.NewOctahedron(), nil
	case "dodecahedron":
		return models.NewDodecahedron(), nil
	case "icosahedron":
		return models.NewIcosahedron(), nil
	case "sphere":
		return latheSphere(12, 24)
	default:
		return nil, fmt.Errorf("unknown shape %q", name)
	}
}

// latheSphere builds a sphere by revolving a semicircular profile around
// the y axis.
func latheSphere(rings, segments int) (*models.Mesh, error) {
	profile := make([]math3d.Point3, 0, rings)
	for i := 1; i <= rings; i++ {
		phi := math.Pi * float64(i) / float64(rings+1)
		profile = append(profile, math3d.P3(math.Sin(phi), math.Cos(phi), 0))
	}

	axis, err := math3d.LineThrough(math3d.P3(0, -1, 0), math3d.P3(0, 1, 0))
	if err != nil {
		return nil, err
	}
	return models.Lathe(profile, axis, segments)
}

// normalizeMesh centers the mesh on the origin and scales its longest
// axis to 2 world units, so every model fits the default camera.
func normalizeMesh(mesh *models.Mesh) {
	min, max := mesh.Bounds()
	size := max.Sub(min)
	maxDim := math.Max(size.X, math.Max(size.Y, size.Z))
	if maxDim <= 0 {
		return
	}

	scale := 2.0 / maxDim
	center := min.Add(size.Scale(0.5))
	for i, v := range mesh.Vertices {
		mesh.Vertices[i] = math3d.P3(
			(v.X-center.X)*scale,
			(v.Y-center.Y)*scale,
			(v.Z-center.Z)*scale,
		)
	}
}

func parseShading(name string) (render.ShadingMode, error) {
	switch name {
	case "flat":
		return render.ShadeFlat, nil
	case "gouraud":
		return render.ShadeGouraud, nil
	case "toon":
		return render.ShadeToon, nil
	default:
		return 0, fmt.Errorf("unknown shading mode %q", name)
	}
}

// snapshot renders a single supersampled frame to an image file.
func snapshot(scene *render.Scene, renderer *render.SceneRenderer, path string) error {
	var w, h int
	if _, err := fmt.Sscanf(*outSize, "%dx%d", &w, &h); err != nil || w <= 0 || h <= 0 {
		return fmt.Errorf("invalid -size %q (want WxH)", *outSize)
	}

	const super = 4
	scene.Camera.Aspect = float64(w) / float64(h)
	canvas := render.NewCanvas(w*super, h*super)
	if _, err := renderer.Render(scene, canvas); err != nil {
		return err
	}
	out := canvas.Downsample(super)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return out.SavePNG(path)
	case ".webp":
		return out.SaveWebP(path)
	default:
		return fmt.Errorf("unsupported output format: %s (use .png or .webp)", ext)
	}
}

func run(modelPath string) error {
	var bgR, bgG, bgB uint8 = 30, 30, 40
	fmt.Sscanf(*bgColor, "%d,%d,%d", &bgR, &bgG, &bgB)

	shading, err := parseShading(*shadingName)
	if err != nil {
		return err
	}

	mesh, texture, name, err := loadMesh(modelPath)
	if err != nil {
		return err
	}
	normalizeMesh(mesh)

	if *texturePath != "" {
		texture, err = models.LoadTexture(*texturePath)
		if err != nil {
			fmt.Printf("Warning: could not load texture: %v\n", err)
		}
	}

	model := models.NewModel(mesh)
	model.Name = name
	if texture != nil {
		model.SetTexture(texture)
	}

	camera, err := render.NewCamera(math.Pi/3, 1, 0.1, 100)
	if err != nil {
		return err
	}
	if *parallel {
		camera.Projection = render.ProjectionParallel
	}
	cameraZ := 5.0
	camera.Frame.Origin = math3d.P3(0, 0, cameraZ)

	view := NewViewState()

	scene := render.NewScene(camera)
	scene.Background = render.RGB(bgR, bgG, bgB)
	scene.AddModel(model)
	scene.AddLight(render.NewLight(view.LightPos, 1))

	renderer := render.NewSceneRenderer()
	renderer.Shading = shading

	if *outPath != "" {
		return snapshot(scene, renderer, *outPath)
	}

	// Interactive terminal session from here on.
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	// Enable mouse mode
	fmt.Fprint(os.Stdout, "\x1b[?1003h") // any-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // SGR extended mouse mode

	viewer := render.NewTerminalViewer(term, width, height)
	cWidth, cHeight := viewer.CanvasSize()
	canvas := render.NewCanvas(cWidth, cHeight)
	camera.Aspect = float64(cWidth) / float64(cHeight)

	hud := NewHUD(name)
	rotation := NewRotationState(*targetFPS)
	baseFrame := mesh.Frame

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Input state
	inputTorque := struct{ pitch, yaw, roll float64 }{}
	const torqueStrength = 3.0

	var mouseDown bool
	var lastMouseX, lastMouseY int

	// stateMu guards the state shared between the event goroutine and
	// the frame loop: canvas, camera, renderer, view, rotation, torque.
	var stateMu sync.Mutex

	go func() {
		for ev := range term.Events() {
			stateMu.Lock()
			quit := false
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				viewer = render.NewTerminalViewer(term, width, height)
				cWidth, cHeight = viewer.CanvasSize()
				canvas = render.NewCanvas(cWidth, cHeight)
				camera.Aspect = float64(cWidth) / float64(cHeight)

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape"):
					if view.LightMode {
						view.LightMode = false
					} else {
						cancel()
						quit = true
					}
				case ev.MatchString("ctrl+c"):
					cancel()
					quit = true
				case ev.MatchString("q"):
					inputTorque.roll = -torqueStrength
				case ev.MatchString("e"):
					inputTorque.roll = torqueStrength
				case ev.MatchString("w", "up"):
					inputTorque.pitch = -torqueStrength
				case ev.MatchString("s", "down"):
					inputTorque.pitch = torqueStrength
				case ev.MatchString("a", "left"):
					inputTorque.yaw = -torqueStrength
				case ev.MatchString("d", "right"):
					inputTorque.yaw = torqueStrength
				case ev.MatchString("space"):
					rotation.ApplyImpulse(
						(rand.Float64()-0.5)*1.5,
						(rand.Float64()-0.5)*1.5,
						(rand.Float64()-0.5)*1.5,
					)
				case ev.MatchString("r"):
					rotation.Reset()
					cameraZ = 5.0
					camera.Frame.Origin = math3d.P3(0, 0, cameraZ)
				case ev.MatchString("+", "="):
					cameraZ = math.Max(1, cameraZ-0.5)
					camera.Frame.Origin = math3d.P3(0, 0, cameraZ)
				case ev.MatchString("-", "_"):
					cameraZ = math.Min(20, cameraZ+0.5)
					camera.Frame.Origin = math3d.P3(0, 0, cameraZ)
				case ev.MatchString("t"):
					view.TextureEnabled = !view.TextureEnabled
					if view.TextureEnabled {
						model.SetTexture(texture)
					} else {
						model.SetTexture(nil)
					}
				case ev.MatchString("x"):
					renderer.Wireframe = !renderer.Wireframe
					renderer.Solid = !renderer.Wireframe
				case ev.MatchString("n"):
					renderer.ShowNormals = !renderer.ShowNormals
				case ev.MatchString("g"):
					renderer.ShowAxes = !renderer.ShowAxes
					renderer.ShowLights = renderer.ShowAxes
				case ev.MatchString("b"):
					renderer.BackfaceCulling = !renderer.BackfaceCulling
				case ev.MatchString("z"):
					renderer.DepthTest = !renderer.DepthTest
				case ev.MatchString("m"):
					switch renderer.Shading {
					case render.ShadeFlat:
						renderer.Shading = render.ShadeGouraud
					case render.ShadeGouraud:
						renderer.Shading = render.ShadeToon
					default:
						renderer.Shading = render.ShadeFlat
					}
				case ev.MatchString("p"):
					if camera.Projection == render.ProjectionParallel {
						camera.Projection = render.ProjectionPerspective
					} else {
						camera.Projection = render.ProjectionParallel
					}
				case ev.MatchString("l"):
					view.LightMode = true
					view.PendingLight = view.LightPos
				case ev.MatchString("?"), ev.MatchString("shift+/"):
					view.ShowHUD = !view.ShowHUD
				}

			case uv.KeyReleaseEvent:
				switch {
				case ev.MatchString("w"), ev.MatchString("up"), ev.MatchString("s"), ev.MatchString("down"):
					inputTorque.pitch = 0
				case ev.MatchString("a"), ev.MatchString("left"), ev.MatchString("d"), ev.MatchString("right"):
					inputTorque.yaw = 0
				case ev.MatchString("q"), ev.MatchString("e"):
					inputTorque.roll = 0
				}

			case uv.MouseClickEvent:
				if view.LightMode {
					view.LightPos = view.PendingLight
					view.LightMode = false
				} else {
					mouseDown = true
					lastMouseX, lastMouseY = ev.X, ev.Y
				}

			case uv.MouseReleaseEvent:
				if !view.LightMode {
					mouseDown = false
				}

			case uv.MouseMotionEvent:
				if view.LightMode {
					view.PendingLight = view.ScreenToLightPos(ev.X, ev.Y, width, height)
				} else if mouseDown {
					dx := ev.X - lastMouseX
					dy := ev.Y - lastMouseY
					rotation.ApplyImpulse(float64(dy)*0.03, float64(dx)*0.03, 0)
					lastMouseX, lastMouseY = ev.X, ev.Y
				}

			case uv.MouseWheelEvent:
				switch ev.Button {
				case uv.MouseWheelUp:
					cameraZ = math.Max(1, cameraZ-0.5)
				case uv.MouseWheelDown:
					cameraZ = math.Min(20, cameraZ+0.5)
				}
				camera.Frame.Origin = math3d.P3(0, 0, cameraZ)
			}
			stateMu.Unlock()
			if quit {
				return
			}
		}
	}()

	targetDuration := time.Second / time.Duration(*targetFPS)
	lastFrame := time.Now()

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		default:
		}

		now := time.Now()
		dt := now.Sub(lastFrame).Seconds()
		lastFrame = now

		if dt > 0.1 {
			dt = 0.1
		}

		stateMu.Lock()

		// Apply input torque and decay it (key release events unreliable)
		rotation.ApplyImpulse(
			inputTorque.pitch*dt,
			inputTorque.yaw*dt,
			inputTorque.roll*dt,
		)
		inputTorque.pitch *= 0.9
		inputTorque.yaw *= 0.9
		inputTorque.roll *= 0.9

		rotation.Update()

		// Rebuild the model frame from the accumulated rotation.
		mesh.Frame = baseFrame
		mesh.RotateX(rotation.Pitch.Position)
		mesh.RotateY(rotation.Yaw.Position)
		mesh.RotateZ(rotation.Roll.Position)

		// Track the light position chosen in light mode.
		lightPos := view.LightPos
		if view.LightMode {
			lightPos = view.PendingLight
		}
		scene.Lights[0].Position = lightPos

		polyCount, err := renderer.Render(scene, canvas)
		if err != nil {
			stateMu.Unlock()
			cleanup()
			return err
		}

		if err := viewer.Display(canvas); err != nil {
			stateMu.Unlock()
			cleanup()
			return fmt.Errorf("display: %w", err)
		}

		hud.UpdateFPS()
		hud.Render(width, height, polyCount, view, renderer)
		stateMu.Unlock()

		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
