package terminal

import (
	"strings"
	"testing"

	"termfolio/internal/profile"
	"termfolio/internal/vfs"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedPicker always returns the same index.
type fixedPicker int

func (p fixedPicker) IntN(n int) int { return int(p) % n }

func newTestInterpreter(t *testing.T) *Interpreter {
	t.Helper()
	return NewInterpreter(profile.Default(), nil, Options{Picker: fixedPicker(0)})
}

// run feeds lines through Route and returns the last response and state.
func run(in *Interpreter, st State, lines ...string) (Response, State) {
	var resp Response
	for _, l := range lines {
		resp, st = in.Route(l, st)
	}
	return resp, st
}

// outputs returns the text of the output blocks.
func outputs(r Response) []string {
	var out []string
	for _, b := range r.Blocks {
		if b.Kind == BlockOutput {
			out = append(out, b.Text)
		}
	}
	return out
}

func TestProcess_BlankLineIsNoop(t *testing.T) {
	in := newTestInterpreter(t)
	st := in.NewState()

	for _, line := range []string{"", "   ", "\t"} {
		resp, next := in.Process(line, st)
		assert.Empty(t, resp.Blocks)
		assert.Empty(t, next.History)
		assert.Equal(t, st.CurrentPath, next.CurrentPath)
	}
}

func TestProcess_EchoAndHistory(t *testing.T) {
	in := newTestInterpreter(t)
	st := in.NewState()

	resp, st := in.Process("bogus arg", st)
	require.NotEmpty(t, resp.Blocks)
	assert.Equal(t, BlockCommand, resp.Blocks[0].Kind)
	assert.Equal(t, "user@host:~$ bogus arg", resp.Blocks[0].Text)
	assert.Equal(t, []string{"bogus arg"}, st.History)

	_, st = in.Process("ls", st)
	assert.Equal(t, []string{"ls", "bogus arg"}, st.History)
}

func TestProcess_NotFound(t *testing.T) {
	in := newTestInterpreter(t)
	resp, st := in.Process("  frobnicate   now ", in.NewState())

	assert.Equal(t, "not-found", resp.Command)
	assert.Equal(t, []string{"Command not found:   frobnicate   now . Type 'help' for a list of commands."}, outputs(resp))
	assert.Nil(t, resp.Chat)
	assert.Equal(t, ModeNormal, st.Mode)
}

func TestProcess_CommandNameCaseInsensitive(t *testing.T) {
	in := newTestInterpreter(t)
	resp, _ := in.Process("LS", in.NewState())
	assert.Equal(t, "ls", resp.Command)
	assert.Equal(t, []string{"about.txt  skills.txt  social.txt  projects/"}, outputs(resp))
}

func TestLs(t *testing.T) {
	in := newTestInterpreter(t)
	st := in.NewState()

	resp, _ := in.Process("ls", st)
	require.Len(t, resp.Blocks, 2)
	assert.Equal(t, "about.txt  skills.txt  social.txt  projects/", resp.Blocks[1].Text)
	assert.Contains(t, resp.Blocks[1].Entries, vfs.Entry{Name: "projects", IsDir: true})

	resp, _ = in.Process("ls /", st)
	assert.Equal(t, []string{"home/"}, outputs(resp))

	resp, _ = in.Process("ls ../..", st)
	assert.Equal(t, []string{"home/"}, outputs(resp))
}

func TestLs_Errors(t *testing.T) {
	in := newTestInterpreter(t)
	st := in.NewState()

	resp, next := in.Process("ls nonexistent", st)
	assert.Equal(t, []string{"ls: cannot access 'nonexistent': No such file or directory"}, outputs(resp))
	assert.Equal(t, ToneError, resp.Blocks[1].Tone)
	assert.Equal(t, st.CurrentPath, next.CurrentPath)

	resp, _ = in.Process("ls about.txt", st)
	assert.Equal(t, []string{"ls: cannot access 'about.txt': No such file or directory"}, outputs(resp))
}

func TestCd(t *testing.T) {
	in := newTestInterpreter(t)
	st := in.NewState()

	resp, st := in.Process("cd projects", st)
	assert.Empty(t, outputs(resp))
	assert.Equal(t, "/home/prasanth/projects", st.CurrentPath)
	assert.Equal(t, "user@host:~/projects$", in.Prompt(st))

	_, st = in.Process("cd ..", st)
	assert.Equal(t, "/home/prasanth", st.CurrentPath)

	_, st = in.Process("cd /", st)
	assert.Equal(t, "/", st.CurrentPath)

	_, st = in.Process("cd", st)
	assert.Equal(t, "/home/prasanth", st.CurrentPath)
}

func TestCd_IntoAndBack(t *testing.T) {
	in := newTestInterpreter(t)
	st := in.NewState()
	st.CurrentPath = "/home/prasanth/projects"

	// cd into a file fails and leaves the path alone; cd .. still goes up.
	_, st = run(in, st, "cd promptpilot.md", "cd ..")
	assert.Equal(t, "/home/prasanth", st.CurrentPath)
}

func TestCd_Errors(t *testing.T) {
	in := newTestInterpreter(t)
	st := in.NewState()

	resp, next := in.Process("cd nowhere", st)
	assert.Equal(t, []string{"cd: no such file or directory: nowhere"}, outputs(resp))
	assert.Equal(t, st.CurrentPath, next.CurrentPath)

	resp, next = in.Process("cd about.txt", st)
	assert.Equal(t, []string{"cd: no such file or directory: about.txt"}, outputs(resp))
	assert.Equal(t, st.CurrentPath, next.CurrentPath)
}

func TestCat(t *testing.T) {
	in := newTestInterpreter(t)
	st := in.NewState()

	catResp, _ := in.Process("cat about.txt", st)
	aboutResp, _ := in.Process("about", st)
	require.Len(t, outputs(catResp), 1)
	assert.Equal(t, profile.Default().About, outputs(catResp)[0])
	assert.Equal(t, outputs(catResp), outputs(aboutResp))

	resp, _ := in.Process("cat projects/promptpilot.md", st)
	require.Len(t, resp.Blocks, 2)
	assert.True(t, resp.Blocks[1].Markdown)
	assert.True(t, strings.HasPrefix(resp.Blocks[1].Text, "# PromptPilot\n\n"))
}

func TestCat_Errors(t *testing.T) {
	in := newTestInterpreter(t)
	st := in.NewState()

	tests := []struct {
		line string
		want string
	}{
		{"cat", "cat: missing operand"},
		{"cat projects", "cat: projects: Is a directory"},
		{"cat nope.txt", "cat: nope.txt: No such file or directory"},
		{"cat ../../..", "cat: ../../..: Is a directory"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			resp, _ := in.Process(tt.line, st)
			assert.Equal(t, []string{tt.want}, outputs(resp))
		})
	}
}

func TestTerminalToggle(t *testing.T) {
	in := newTestInterpreter(t)
	for _, line := range []string{"terminal", "term", "TERM"} {
		resp, st := in.Process(line, in.NewState())
		assert.True(t, resp.ToggleVisibility, line)
		assert.Empty(t, outputs(resp))
		assert.Len(t, st.History, 1)
	}
}

func TestClear(t *testing.T) {
	in := newTestInterpreter(t)
	resp, st := run(in, in.NewState(), "about", "clear")

	assert.True(t, resp.Clear)
	assert.Equal(t, []Block{in.Welcome()}, resp.Blocks)
	assert.Equal(t, []string{"clear", "about"}, st.History)
}

func TestHistory(t *testing.T) {
	in := newTestInterpreter(t)
	resp, _ := run(in, in.NewState(), "about", "ls", "cat about.txt", "history")

	assert.Equal(t, []string{"1: about\n2: ls\n3: cat about.txt"}, outputs(resp))
}

func TestHistory_Empty(t *testing.T) {
	in := newTestInterpreter(t)
	resp, _ := in.Process("history", in.NewState())
	assert.Empty(t, outputs(resp))
}

func TestInfoCommands(t *testing.T) {
	in := newTestInterpreter(t)
	st := in.NewState()

	tests := []struct {
		line     string
		title    string
		contains string
	}{
		{"help", "Available Commands:", "sudo hire     - Hire me!"},
		{"skills", "Technical Skills:", "Languages: Python, C++, JavaScript, TypeScript"},
		{"social", "Connect with Me:", "GitHub: github.com/PrasanthPradeep"},
		{"projects", "Projects:", "Project Prism\n  A web-based data visualization tool.\n  github.com/PrasanthPradeep/ProjectPrism"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			resp, _ := in.Process(tt.line, st)
			require.Len(t, resp.Blocks, 2)
			assert.Equal(t, tt.title, resp.Blocks[1].Title)
			assert.Contains(t, resp.Blocks[1].Text, tt.contains)
		})
	}
}

func TestNeofetch_PinnedQuote(t *testing.T) {
	p := profile.Default()
	in := NewInterpreter(p, nil, Options{Picker: fixedPicker(1)})

	resp, _ := in.Process("neofetch", in.NewState())
	out := outputs(resp)
	require.Len(t, out, 1)
	assert.Contains(t, out[0], "Name: Prasanth Pradeep")
	assert.Contains(t, out[0], "Contact: prasanthpradeep@email.com")
	assert.Contains(t, out[0], `"The best way to get started is to quit talking and begin doing." – Walt Disney`)
	assert.Contains(t, out[0], "██████╗")
}

func TestNeofetch_NoQuotes(t *testing.T) {
	p := profile.Default()
	p.Quotes = nil
	in := NewInterpreter(p, nil, Options{Picker: fixedPicker(0)})

	resp, _ := in.Process("neofetch", in.NewState())
	assert.NotContains(t, outputs(resp)[0], "–")
}

func TestSudoHire_ExactMatch(t *testing.T) {
	in := newTestInterpreter(t)
	st := in.NewState()

	for _, line := range []string{"sudo", "sudo hire now", "sudo rm"} {
		resp, next := in.Process(line, st)
		assert.Equal(t, "not-found", resp.Command, line)
		assert.Equal(t, ModeNormal, next.Mode)
	}

	resp, next := in.Process("sudo   hire", st)
	assert.Equal(t, "sudo hire", resp.Command)
	assert.Equal(t, ModeHire, next.Mode)
	assert.Equal(t, StageAwaitingName, next.Stage)
	assert.Equal(t, []string{"What is your full name?"}, outputs(resp))
}

func TestHireWizard(t *testing.T) {
	in := newTestInterpreter(t)
	st := in.NewState()

	_, st = in.Route("sudo hire", st)
	require.Equal(t, ModeHire, st.Mode)
	require.Equal(t, StageAwaitingName, st.Stage)

	resp, st := in.Route("Jane Doe", st)
	assert.Equal(t, StageAwaitingOrganization, st.Stage)
	assert.Equal(t, "Jane Doe", st.Draft.Name)
	assert.Equal(t, []string{"What is your organization's name?"}, outputs(resp))
	assert.Equal(t, "[Hiring Mode] > Jane Doe", resp.Blocks[0].Text)

	resp, st = in.Route("Acme Corp", st)
	assert.Equal(t, ModeNormal, st.Mode)
	assert.Equal(t, HireDraft{}, st.Draft)
	assert.Equal(t, []string{
		"Thank you, Jane Doe from Acme Corp. I appreciate you taking the first step to hire me.",
		"Initializing hiring sequence...\n>> Congratulations, you just unlocked your best hire!",
	}, outputs(resp))

	require.NotNil(t, resp.Mail)
	assert.Equal(t, "prasanthpradeep@email.com", resp.Mail.To)
	assert.Equal(t, HireSubject, resp.Mail.Subject)
	assert.Contains(t, resp.Mail.Body, "Jane Doe")
	assert.Contains(t, resp.Mail.Body, "Acme Corp")
	assert.True(t, strings.HasPrefix(resp.Mail.Body, "Hello Prasanth,\n\n"))
	assert.Equal(t, DefaultHireDelay, resp.Mail.Delay)

	// Wizard answers are not commands.
	assert.Equal(t, []string{"sudo hire"}, st.History)
}

func TestHireWizard_AnswersAreNotDispatched(t *testing.T) {
	in := newTestInterpreter(t)
	_, st := run(in, in.NewState(), "sudo hire", "ls", "")

	assert.Equal(t, ModeNormal, st.Mode)
	assert.Equal(t, "/home/prasanth", st.CurrentPath)
}

func TestHireWizard_EmptyAnswers(t *testing.T) {
	in := newTestInterpreter(t)
	resp, st := run(in, in.NewState(), "sudo hire", "", "")

	assert.Equal(t, ModeNormal, st.Mode)
	require.NotNil(t, resp.Mail)
	assert.Contains(t, resp.Mail.Body, "My name is  from .")
}

func TestAiModes(t *testing.T) {
	in := newTestInterpreter(t)

	resp, st := in.Process("ai", in.NewState())
	assert.Equal(t, ModeAiChat, st.Mode)
	assert.Equal(t, []string{
		"Starting AI chat session... Type 'exit' to end.",
		"Note: AI integration requires backend setup.",
	}, outputs(resp))
	assert.Equal(t, "[AI Chat] >", in.Prompt(st))

	resp, st = in.Process("ai interview", in.NewState())
	assert.Equal(t, ModeInterview, st.Mode)
	assert.Equal(t, "ai interview", resp.Command)
	assert.Equal(t, "Starting mock interview... Type 'exit' to end the session.", outputs(resp)[0])
}

func TestAiExit(t *testing.T) {
	in := newTestInterpreter(t)

	for _, exit := range []string{"exit", "  EXIT ", "Exit"} {
		_, st := in.Route("ai", in.NewState())
		resp, st := in.Route(exit, st)

		assert.Equal(t, ModeNormal, st.Mode, exit)
		assert.Equal(t, []string{"AI chat session ended."}, outputs(resp))
		assert.Equal(t, ModeAiChat, resp.Ended)
		// exit is handled before dispatch and never recorded
		assert.Equal(t, []string{"ai"}, st.History)
	}

	_, st := in.Route("ai interview", in.NewState())
	resp, st := in.Route("exit", st)
	assert.Equal(t, ModeNormal, st.Mode)
	assert.Equal(t, []string{"Interview session ended."}, outputs(resp))
	assert.Equal(t, ModeInterview, resp.Ended)

	resp, _ = in.Route("about", st)
	assert.Equal(t, ModeNormal, resp.Ended)
}

func TestAiMode_CommandsStillRun(t *testing.T) {
	in := newTestInterpreter(t)
	_, st := in.Route("ai", in.NewState())

	resp, st := in.Route("cd projects", st)
	assert.Equal(t, "/home/prasanth/projects", st.CurrentPath)
	assert.Nil(t, resp.Chat)
	assert.Equal(t, ModeAiChat, st.Mode)

	resp, _ = in.Route("what do you build?", st)
	assert.Equal(t, "not-found", resp.Command)
	require.NotNil(t, resp.Chat)
	assert.Equal(t, ChatRequest{Mode: ModeAiChat, Prompt: "what do you build?"}, *resp.Chat)
}

func TestExitOutsideSessionIsNotFound(t *testing.T) {
	in := newTestInterpreter(t)
	resp, _ := in.Route("exit", in.NewState())
	assert.Equal(t, "not-found", resp.Command)
}

func TestProcess_DoesNotAliasHistory(t *testing.T) {
	in := newTestInterpreter(t)
	_, st := run(in, in.NewState(), "about", "ls")
	before := append([]string(nil), st.History...)

	_, _ = in.Process("skills", st)
	_, _ = in.Process("social", st)

	if diff := cmp.Diff(before, st.History); diff != "" {
		t.Errorf("history mutated (-want +got):\n%s", diff)
	}
}

func TestMailURL(t *testing.T) {
	m := Mail{To: "me@example.com", Subject: "Hi there", Body: "a b\nc&d"}
	assert.Equal(t, "mailto:me@example.com?subject=Hi%20there&body=a%20b%0Ac%26d", m.URL())
}

func TestModeStrings(t *testing.T) {
	assert.Equal(t, "normal", ModeNormal.String())
	assert.Equal(t, "ai-chat", ModeAiChat.String())
	assert.Equal(t, "interview", ModeInterview.String())
	assert.Equal(t, "hire", ModeHire.String())
	assert.Equal(t, "awaiting-name", StageAwaitingName.String())
	assert.Equal(t, "output", BlockOutput.String())
	assert.Equal(t, "error", ToneError.String())
}
