package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"github.com/fsnotify/fsnotify"
	poseoverlay "github.com/swdee/go-poseoverlay"
	"github.com/swdee/go-poseoverlay/config"
	"github.com/swdee/go-poseoverlay/render"
	"github.com/swdee/go-poseoverlay/render/mat"
	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/spatial/r2"
	"image"
	"image/draw"
	_ "image/jpeg"
	"image/png"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
)

// frames is the poses file format, a list of frames each holding a list of
// poses made up of [x, y, confidence] body parts
type frames [][][][3]float64

func main() {
	// disable logging timestamps
	log.SetFlags(0)

	// read in cli flags
	// the image is not included, use any 640x480 photo as the sample poses
	// in ../data/poses.json are laid out for that size
	imgFile := flag.String("i", "../data/people.jpg", "Image file the poses were estimated on")
	posesFile := flag.String("p", "../data/poses.json", "JSON file of pose frames to render")
	cfgFile := flag.String("c", "", "TOML overlay configuration file")
	outFile := flag.String("o", "./overlay-out.png", "Output image file")
	backend := flag.String("b", "canvas", "Rendering backend to use, canvas or mat")
	watch := flag.Bool("w", false, "Watch the poses file and render again when it changes")
	verbose := flag.Bool("v", false, "Enable debug logging")

	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg := config.Default()

	if *cfgFile != "" {
		var err error
		cfg, err = config.Load(*cfgFile)

		if err != nil {
			log.Fatal("Error loading config: ", err)
		}
	}

	var ov overlay
	var err error

	switch *backend {
	case "canvas":
		ov, err = newCanvasOverlay(*imgFile)
	case "mat":
		ov, err = newMatOverlay(*imgFile)
	default:
		log.Fatalf("Unknown backend %q", *backend)
	}

	if err != nil {
		log.Fatal("Error reading image: ", err)
	}

	defer ov.Close()

	w, h := ov.Size()
	cfg = cfg.WithImageSize(int(w), int(h))

	topo, err := cfg.LoadTopology()

	if err != nil {
		log.Fatal("Error loading topology: ", err)
	}

	opts, err := cfg.Options()

	if err != nil {
		log.Fatal("Error in config: ", err)
	}

	opts.Logger = logger

	renderer, err := poseoverlay.New(ov, topo, opts)

	if err != nil {
		log.Fatal("Error creating renderer: ", err)
	}

	run := func() {
		if err := renderFrames(renderer, ov, *posesFile, *outFile, cfg.Threshold); err != nil {
			log.Println("Error rendering poses: ", err)
		}
	}

	run()

	if !*watch {
		log.Println("done")
		return
	}

	if err := watchFile(*posesFile, run); err != nil {
		log.Fatal("Error watching poses file: ", err)
	}
}

// renderFrames renders every frame in the poses file and saves the result
func renderFrames(renderer *poseoverlay.Renderer, ov overlay, posesFile,
	outFile string, threshold float32) error {

	data, err := os.ReadFile(posesFile)

	if err != nil {
		return fmt.Errorf("error opening file: %w", err)
	}

	var fr frames

	if err := json.Unmarshal(data, &fr); err != nil {
		return fmt.Errorf("error decoding poses: %w", err)
	}

	for i, frame := range fr {

		if err := renderer.UpdateFrame(toPoses(frame), threshold); err != nil {
			log.Printf("Frame %d skipped: %v", i, err)
			continue
		}

		file := outFile
		if len(fr) > 1 {
			file = frameFile(outFile, i)
		}

		if err := ov.Save(file); err != nil {
			return err
		}

		stats := renderer.Stats()
		log.Printf("Frame %d: %d poses, %d pose groups allocated, saved %s",
			i, stats.ActiveGroups, stats.Groups, file)
	}

	return nil
}

// toPoses converts a frame from the poses file format
func toPoses(frame [][][3]float64) []poseoverlay.HumanPose2D {

	poses := make([]poseoverlay.HumanPose2D, len(frame))

	for i, parts := range frame {
		poses[i].Index = i
		poses[i].BodyParts = make([]poseoverlay.BodyPart2D, len(parts))

		for j, p := range parts {
			poses[i].BodyParts[j] = poseoverlay.BodyPart2D{
				Index:       j,
				Coordinates: r2.Vec{X: p[0], Y: p[1]},
				Confidence:  float32(p[2]),
			}
		}
	}

	return poses
}

// frameFile inserts the frame number before the file extension
func frameFile(file string, frame int) string {
	ext := filepath.Ext(file)
	return fmt.Sprintf("%s-%04d%s", strings.TrimSuffix(file, ext), frame, ext)
}

// watchFile calls fn each time file is written to until interrupted
func watchFile(file string, fn func()) error {

	watcher, err := fsnotify.NewWatcher()

	if err != nil {
		return err
	}

	defer watcher.Close()

	// watch the directory as editors often replace the file on save
	if err := watcher.Add(filepath.Dir(file)); err != nil {
		return err
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	log.Printf("Watching %s for changes", file)

	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if filepath.Clean(ev.Name) != filepath.Clean(file) {
				continue
			}

			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				fn()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Println("Watcher error: ", err)

		case <-stop:
			return nil
		}
	}
}

// overlay is a rendering backend that can write its result to file
type overlay interface {
	poseoverlay.Backend
	Save(file string) error
	Close()
}

// canvasOverlay draws with the pure Go canvas over the source image
type canvasOverlay struct {
	*render.Canvas
	src image.Image
}

func newCanvasOverlay(imgFile string) (*canvasOverlay, error) {

	f, err := os.Open(imgFile)

	if err != nil {
		return nil, err
	}

	defer f.Close()

	src, _, err := image.Decode(f)

	if err != nil {
		return nil, err
	}

	b := src.Bounds()

	return &canvasOverlay{
		Canvas: render.NewCanvas(b.Dx(), b.Dy()),
		src:    src,
	}, nil
}

func (c *canvasOverlay) Save(file string) error {

	dst := image.NewRGBA(image.Rect(0, 0, c.src.Bounds().Dx(), c.src.Bounds().Dy()))
	draw.Draw(dst, dst.Bounds(), c.src, c.src.Bounds().Min, draw.Src)

	c.Draw(dst)

	f, err := os.Create(file)

	if err != nil {
		return err
	}

	defer f.Close()

	return png.Encode(f, dst)
}

func (c *canvasOverlay) Close() {}

// matOverlay draws with OpenCV onto the source image
type matOverlay struct {
	*mat.Surface
	src gocv.Mat
}

func newMatOverlay(imgFile string) (*matOverlay, error) {

	img := gocv.IMRead(imgFile, gocv.IMReadColor)

	if img.Empty() {
		return nil, fmt.Errorf("error reading image from: %s", imgFile)
	}

	return &matOverlay{
		Surface: mat.NewSurface(img),
		src:     img,
	}, nil
}

func (m *matOverlay) Save(file string) error {

	out := m.src.Clone()
	defer out.Close()

	m.Draw(&out)

	if ok := gocv.IMWrite(file, out); !ok {
		return fmt.Errorf("failed to save the image %s", file)
	}

	return nil
}

func (m *matOverlay) Close() {
	m.src.Close()
}
