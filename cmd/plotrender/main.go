package main

import (
	"context"
	"fmt"
	"image/jpeg"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/browser"
	"github.com/tdewolff/argp"
	"github.com/tdewolff/plotview"
	"github.com/tdewolff/plotview/renderers/gochart"
	"github.com/tdewolff/plotview/renderers/gonumplot"
	"github.com/tdewolff/plotview/renderers/rasterizer"
	"github.com/tdewolff/plotview/renderers/svg"
	"github.com/tdewolff/plotview/renderers/vector"
	"github.com/wcharczuk/go-chart/v2"
)

type Render struct {
	Output      string `short:"o" desc:"Output file, the format follows from the extension"`
	Input       string `short:"i" desc:"CSV file with an X column followed by one or more Y columns, replaces the demo"`
	Backend     string `short:"b" default:"" desc:"Backend: raster, svg, vector, gochart or gonum, defaults to raster for images and svg for .svg"`
	Demo        string `short:"d" default:"sine" desc:"Demo plot: sine, log, dense, slave or shapes"`
	Width       int    `short:"W" default:"800" desc:"Width in pixels"`
	Height      int    `short:"H" default:"600" desc:"Height in pixels"`
	Points      int    `short:"n" default:"10000" desc:"Number of data points"`
	Scatter     bool   `desc:"Draw series as points instead of lines"`
	LockAspect  bool   `desc:"Use the same scale for both axes"`
	AvoidLabels bool   `desc:"Move series labels so that they do not overlap"`
	Grid        bool   `desc:"Draw gridlines"`
	Timeout     int    `default:"10" desc:"Maximum rendering time in seconds"`
	Open        bool   `desc:"Open the output file with the default application"`
	Verbose     bool   `short:"v" desc:"Verbose logging"`
}

func main() {
	root := argp.NewCmd(&Render{}, "Render a demonstration plot to a file using one of the plotview backends")
	root.Parse()
	root.PrintHelp()
}

func (cmd *Render) Run() error {
	if cmd.Output == "" {
		fmt.Println("ERROR: must specify output filename")
		return argp.ShowUsage
	} else if cmd.Width <= 0 || cmd.Height <= 0 {
		fmt.Println("ERROR: width and height must be positive")
		return argp.ShowUsage
	}

	level := slog.LevelWarn
	if cmd.Verbose {
		level = slog.LevelDebug
	}
	plotview.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	c, err := cmd.compose()
	if err != nil {
		return err
	}
	defer c.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	ctx, cancel = context.WithTimeout(ctx, time.Duration(cmd.Timeout)*time.Second)
	defer cancel()

	start := time.Now()
	if err := cmd.write(ctx, c); err != nil {
		return err
	}
	plotview.Logger().Info("plot written", slog.String("file", cmd.Output), slog.Duration("elapsed", time.Since(start)))
	if cmd.Open {
		return browser.OpenFile(cmd.Output)
	}
	return nil
}

func (cmd *Render) compose() (*plotview.Composer, error) {
	c := plotview.NewComposer(cmd.Width, cmd.Height, nil)
	c.AvoidLabelOverlap = cmd.AvoidLabels
	c.Viewport().SetMargins(plotview.Margins{Top: 20, Right: 60, Bottom: 40, Left: 60})
	c.Viewport().SetLockAspect(cmd.LockAspect)

	x := plotview.NewAxis("x", plotview.XAxis)
	x.Grid = cmd.Grid
	var y *plotview.Axis
	if cmd.Demo == "log" {
		y = plotview.NewLogAxis("y", plotview.YAxis)
		y.AutoScale = true
	} else {
		y = plotview.NewAxis("y", plotview.YAxis)
	}
	y.Grid = cmd.Grid
	if _, err := c.AddAxis(x); err != nil {
		return nil, err
	}
	yHandle, err := c.AddAxis(y)
	if err != nil {
		return nil, err
	}

	demo := cmd.Demo
	if cmd.Input != "" {
		demo = "file"
	}

	n := max(cmd.Points, 2)
	add := func(name string, f func(float64) float64, xmin, xmax float64, yAxis *plotview.Axis) error {
		xs, ys := make([]float64, n), make([]float64, n)
		for i := range xs {
			xs[i] = xmin + (xmax-xmin)*float64(i)/float64(n-1)
			ys[i] = f(xs[i])
		}
		s, err := plotview.NewXYSeries(name, xs, ys, x, yAxis)
		if err != nil {
			return err
		}
		s.Continuous = !cmd.Scatter
		return c.AddLayer(s)
	}

	switch demo {
	case "file":
		f, err := os.Open(cmd.Input)
		if err != nil {
			return nil, err
		}
		tbl, err := readCSV(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", cmd.Input, err)
		}
		for i := 1; i < len(tbl.cols); i++ {
			s, err := plotview.NewXYSeries(tbl.names[i], tbl.cols[0], tbl.cols[i], x, y)
			if err != nil {
				return nil, err
			}
			s.Continuous = !cmd.Scatter
			if err := c.AddLayer(s); err != nil {
				return nil, err
			}
		}
		demo = filepath.Base(cmd.Input)
	case "sine":
		if err := add("sin", math.Sin, 0.0, 4.0*math.Pi, y); err != nil {
			return nil, err
		} else if err := add("cos", math.Cos, 0.0, 4.0*math.Pi, y); err != nil {
			return nil, err
		}
		if err := c.AddLayer(plotview.NewFunctionOfX("sinc", sinc, x, y)); err != nil {
			return nil, err
		}
	case "log":
		if err := add("exp", math.Exp, 0.0, 10.0, y); err != nil {
			return nil, err
		} else if err := add("x^3", func(v float64) float64 { return v * v * v }, 0.1, 10.0, y); err != nil {
			return nil, err
		}
	case "dense":
		rnd := rand.New(rand.NewPCG(1, 2))
		walk := 0.0
		if err := add("walk", func(float64) float64 {
			walk += rnd.NormFloat64()
			return walk
		}, 0.0, 1.0, y); err != nil {
			return nil, err
		}
	case "slave":
		y2 := plotview.NewAxis("y2", plotview.YAxis)
		y2.Align = plotview.AlignBorderRight
		if _, err := c.AddAxis(y2); err != nil {
			return nil, err
		} else if err := y2.SetMaster(yHandle); err != nil {
			return nil, err
		}
		celsius := func(t float64) float64 { return 10.0 + 8.0*math.Sin(2.0*math.Pi*t/365.0) }
		if err := add("°C", celsius, 0.0, 365.0, y); err != nil {
			return nil, err
		}
		rain := func(t float64) float64 { return 60.0 + 50.0*math.Cos(2.0*math.Pi*t/365.0) }
		if err := add("mm", rain, 0.0, 365.0, y2); err != nil {
			return nil, err
		}
		profile := plotview.NewProfile("monthly", monthly(), x, y)
		if err := c.AddLayer(profile); err != nil {
			return nil, err
		}
	case "shapes":
		c.Viewport().SetLockAspect(true)
		for i, pts := range [][]plotview.Point{
			plotview.Circle(1.0),
			plotview.RegularPolygon(6, 1.0, true),
			plotview.StarPolygon(5, 1.0, 0.4, true),
			plotview.Rectangle(1.5, 1.0),
		} {
			s := plotview.NewMovableShape(fmt.Sprintf("shape%d", i), pts, x, y)
			s.Pen.Color = plotview.PaletteColor(i)
			s.SetPosition(plotview.Point{X: 3.0 * float64(i), Y: 0.0})
			s.SetRotation(15.0 * float64(i))
			if err := c.AddLayer(s); err != nil {
				return nil, err
			}
		}
	default:
		return nil, fmt.Errorf("unknown demo %q", cmd.Demo)
	}

	if err := c.AddLayer(plotview.NewText("title", demo, 0.5, 0.02)); err != nil {
		return nil, err
	}
	if err := c.FitAll(); err != nil {
		return nil, err
	}
	return c, nil
}

func (cmd *Render) write(ctx context.Context, c *plotview.Composer) error {
	ext := strings.ToLower(filepath.Ext(cmd.Output))
	backend := cmd.Backend
	if backend == "" {
		backend = "raster"
		if ext == ".svg" {
			backend = "svg"
		} else if ext == ".pdf" || ext == ".eps" {
			backend = "vector"
		}
	}
	if backend == "vector" {
		return vector.Write(ctx, cmd.Output, c)
	}

	f, err := os.Create(cmd.Output)
	if err != nil {
		return err
	}
	if err := cmd.encode(ctx, f, c, backend, ext); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (cmd *Render) encode(ctx context.Context, w io.Writer, c *plotview.Composer, backend, ext string) error {
	switch backend {
	case "raster":
		opts := rasterizer.DefaultOptions
		switch ext {
		case ".png":
			return rasterizer.PNGWriter(&opts)(ctx, w, c)
		case ".jpg", ".jpeg":
			return rasterizer.JPGWriter(&opts, &jpeg.Options{Quality: 90})(ctx, w, c)
		case ".gif":
			return rasterizer.GIFWriter(&opts, nil)(ctx, w, c)
		case ".tif", ".tiff":
			return rasterizer.TIFFWriter(&opts, nil)(ctx, w, c)
		}
		if writer, ok := rasterizer.Formats[ext]; ok {
			return writer(&opts)(ctx, w, c)
		}
	case "svg":
		width, height := c.Viewport().ScreenSize()
		opts := svg.DefaultOptions
		s := svg.New(w, width, height, &opts)
		if err := c.Redraw(ctx, s); err != nil && ctx.Err() != nil {
			return err
		}
		return s.Close()
	case "gochart":
		switch ext {
		case ".png":
			return gochart.Write(ctx, w, c, chart.PNG)
		case ".svg":
			return gochart.Write(ctx, w, c, chart.SVG)
		}
	case "gonum":
		if ext == ".png" {
			return gonumplot.WritePNG(ctx, w, c)
		}
	default:
		return fmt.Errorf("unknown backend %q", backend)
	}
	return fmt.Errorf("backend %s does not support %s files", backend, ext)
}

func sinc(x float64) float64 {
	if x == 0.0 {
		return 1.0
	}
	return math.Sin(x) / x
}

func monthly() *plotview.XYs {
	xs := make([]float64, 12)
	ys := make([]float64, 12)
	for i := range xs {
		xs[i] = 365.0 * float64(i) / 12.0
		ys[i] = 10.0 + 8.0*math.Sin(2.0*math.Pi*(xs[i]+15.0)/365.0)
	}
	data, _ := plotview.NewXYs(xs, ys)
	return data
}
