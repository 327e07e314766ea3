package terminal

import (
	"fmt"
	"strings"

	"termfolio/internal/logging"
)

// HireSubject is the subject line of the hire mail.
const HireSubject = "Hiring Inquiry from Your Interactive Portfolio"

const hireBodyTemplate = "Hello %s,\n\n" +
	"My name is %s from %s.\n\n" +
	"I came across your impressive interactive terminal portfolio and was very impressed with your skills and projects.\n\n" +
	"I would like to discuss a potential opportunity with you. Please let me know your availability for a brief chat.\n\n" +
	"Best regards,"

func (in *Interpreter) startHire(resp *Response, st State) State {
	resp.output(ToneNotice, "What is your full name?")
	st.Mode = ModeHire
	st.Stage = StageAwaitingName
	st.Draft = HireDraft{}
	return st
}

// hire feeds one answer to the wizard. Answers are stored verbatim, empty
// ones included. They are not recorded in history.
func (in *Interpreter) hire(line string, st State) (Response, State) {
	resp := Response{Command: "hire"}
	resp.add(in.echo(line, st))

	switch st.Stage {
	case StageAwaitingName:
		st.Draft.Name = line
		st.Stage = StageAwaitingOrganization
		resp.output(ToneNotice, "What is your organization's name?")

	case StageAwaitingOrganization:
		name, org := st.Draft.Name, line
		resp.output(ToneSuccess, fmt.Sprintf("Thank you, %s from %s. I appreciate you taking the first step to hire me.", name, org))
		resp.output(ToneDefault, "Initializing hiring sequence...\n>> Congratulations, you just unlocked your best hire!")
		resp.Mail = in.hireMail(name, org)
		logging.Session("hire request from %q (%q)", name, org)

		st.Mode = ModeNormal
		st.Stage = 0
		st.Draft = HireDraft{}

	default:
		// A hire mode without a stage cannot be produced by Process.
		st.Mode = ModeNormal
		st.Draft = HireDraft{}
		return in.Process(line, st)
	}
	return resp, st
}

func (in *Interpreter) hireMail(name, org string) *Mail {
	return &Mail{
		To:      in.profile.Email,
		Subject: HireSubject,
		Body:    fmt.Sprintf(hireBodyTemplate, firstName(in.profile.Name), name, org),
		Delay:   in.delay,
	}
}

func firstName(full string) string {
	if f := strings.Fields(full); len(f) > 0 {
		return f[0]
	}
	return full
}
