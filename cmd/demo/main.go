// Command demo is a minimal VNC server that serves a static checkerboard
// framebuffer. It exists to exercise the rfb package end to end; socket
// acquisition, flag parsing, and pixel generation all live here, outside
// the core, per spec.md §1/§6.
package main

import (
	"flag"
	"image"
	"image/color"
	"log"
	"net"

	"github.com/ikskuh/zvnc/rfb"
)

var (
	listen   = flag.String("listen", ":5900", "address to listen on")
	password = flag.String("password", "", "VNC-auth password; empty means no authentication")
	width    = flag.Int("width", 800, "framebuffer width")
	height   = flag.Int("height", 600, "framebuffer height")
)

func main() {
	flag.Parse()

	ln, err := net.Listen("tcp", *listen)
	if err != nil {
		log.Fatalf("listen: %v", err)
	}
	log.Printf("rfb demo listening on %s", *listen)

	fb := checkerboard(*width, *height)

	for {
		conn, err := ln.Accept()
		if err != nil {
			log.Printf("accept: %v", err)
			continue
		}
		go serve(conn, fb)
	}
}

func checkerboard(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.RGBA{A: 255}
			if (x/32+y/32)%2 == 0 {
				c.R, c.G, c.B = 0x20, 0x20, 0x30
			} else {
				c.R, c.G, c.B = 0xE0, 0xE0, 0xD0
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func serve(conn net.Conn, fb *image.RGBA) {
	defer conn.Close()

	cfg := rfb.DefaultConfig(uint16(fb.Rect.Dx()), uint16(fb.Rect.Dy()), "zvnc demo")
	if *password != "" {
		cfg.SecurityKind = rfb.SecurityVNCAuth
		cfg.Password = []byte(*password)
	}

	sess, err := rfb.Handshake(conn, cfg)
	if err != nil {
		log.Printf("handshake: %v", err)
		return
	}
	defer sess.Close()
	log.Printf("session %s established (client reported %s)", sess.ID(), sess.ClientProtocolVersion())

	for {
		ev, err := sess.WaitEvent()
		if err != nil {
			log.Printf("session %s: %v", sess.ID(), err)
			return
		}
		if ev == nil {
			log.Printf("session %s closed", sess.ID())
			return
		}

		switch e := ev.(type) {
		case rfb.FramebufferUpdateRequestEvent:
			if err := sendRegion(sess, fb, e); err != nil {
				log.Printf("session %s: send update: %v", sess.ID(), err)
				return
			}
		case rfb.KeyEvent:
			log.Printf("session %s: key %08x down=%v", sess.ID(), uint32(e.Key), e.Down)
		case rfb.PointerEvent:
			// intentionally ignored: the demo has no cursor to move
		case rfb.ClientCutTextEvent:
			log.Printf("session %s: clipboard %q", sess.ID(), e.Text)
		}
	}
}

func sendRegion(sess *rfb.Session, fb *image.RGBA, req rfb.FramebufferUpdateRequestEvent) error {
	pf := sess.PixelFormat()
	w, h := int(req.Width), int(req.Height)
	data := make([]byte, 0, w*h*4)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			px := fb.RGBAAt(int(req.X)+x, int(req.Y)+y)
			c := rfb.Color{
				R: float64(px.R) / 255,
				G: float64(px.G) / 255,
				B: float64(px.B) / 255,
			}
			encoded, err := pf.Encode(c)
			if err != nil {
				return err
			}
			data = append(data, encoded...)
		}
	}

	return sess.SendFramebufferUpdate([]rfb.UpdateRectangle{
		{X: req.X, Y: req.Y, Width: req.Width, Height: req.Height, Encoding: rfb.EncodingRaw, Data: data},
	})
}
