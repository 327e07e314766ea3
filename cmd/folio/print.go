package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"strings"

	"termfolio/internal/ai"
	"termfolio/internal/logging"
	"termfolio/internal/terminal"

	"github.com/fatih/color"
)

// printer writes response blocks as colored plain text.
type printer struct {
	w    io.Writer
	echo bool // print command echo blocks

	heading *color.Color
	dir     *color.Color
	prompt  *color.Color
	tones   map[terminal.Tone]*color.Color
}

func newPrinter(w io.Writer, echo bool) *printer {
	return &printer{
		w:       w,
		echo:    echo,
		heading: color.New(color.FgCyan, color.Bold),
		dir:     color.New(color.FgBlue, color.Bold),
		prompt:  color.New(color.FgGreen),
		tones: map[terminal.Tone]*color.Color{
			terminal.ToneDefault: color.New(color.Reset),
			terminal.ToneError:   color.New(color.FgRed),
			terminal.ToneSuccess: color.New(color.FgGreen),
			terminal.ToneNotice:  color.New(color.FgYellow),
		},
	}
}

func (p *printer) response(resp terminal.Response) {
	for _, b := range resp.Blocks {
		p.block(b)
	}
}

func (p *printer) block(b terminal.Block) {
	switch b.Kind {
	case terminal.BlockWelcome:
		p.tones[terminal.ToneSuccess].Fprintln(p.w, b.Text)
		return
	case terminal.BlockCommand:
		if p.echo {
			p.prompt.Fprintln(p.w, b.Text)
		}
		return
	}

	if b.Title != "" {
		p.heading.Fprintln(p.w, b.Title)
	}
	if len(b.Entries) > 0 {
		names := make([]string, 0, len(b.Entries))
		for _, e := range b.Entries {
			if e.IsDir {
				names = append(names, p.dir.Sprint(e.Name+"/"))
			} else {
				names = append(names, e.Name)
			}
		}
		fmt.Fprintln(p.w, strings.Join(names, "  "))
		return
	}
	p.tones[b.Tone].Fprintln(p.w, b.Text)
}

// reply prints an AI answer or the reason there is none.
func (p *printer) reply(reply string, err error) {
	switch {
	case errors.Is(err, ai.ErrNoBackend):
		p.tones[terminal.ToneNotice].Fprintln(p.w, "Note: AI integration requires backend setup.")
	case err != nil:
		p.tones[terminal.ToneError].Fprintln(p.w, "AI error: "+err.Error())
	default:
		fmt.Fprintln(p.w, reply)
	}
}

func (p *printer) mail(m terminal.Mail) {
	p.tones[terminal.ToneNotice].Fprintln(p.w, "Open in your mail client: "+m.URL())
}

func trackFor(mode terminal.Mode) ai.Track {
	if mode == terminal.ModeInterview {
		return ai.TrackInterview
	}
	return ai.TrackChat
}

// chat forwards a chat request when a conversation is configured, and
// forgets a track's history when its session is exited.
func chat(ctx context.Context, conv *ai.Conversation, resp terminal.Response, p *printer) {
	if conv == nil {
		return
	}
	if resp.Ended != terminal.ModeNormal {
		conv.Reset(trackFor(resp.Ended))
	}
	if resp.Chat == nil {
		return
	}
	reply, err := conv.Ask(ctx, trackFor(resp.Chat.Mode), resp.Chat.Prompt)
	p.reply(reply, err)
}

// openURL asks the desktop to open link with its default handler.
func openURL(link string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", link)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", link)
	default:
		cmd = exec.Command("xdg-open", link)
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			logging.SessionDebug("url opener exited: %v", err)
		}
	}()
	return nil
}
