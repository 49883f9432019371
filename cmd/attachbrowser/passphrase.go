package main

import "github.com/AlecAivazis/survey/v2"

// surveyPassphraseCache implements crypto.PassphraseCache by asking
// once and caching the answer for the life of the process, mirroring
// the original's session-lifetime passphrase cache.
type surveyPassphraseCache struct {
	prompt string
	cached *string
}

func newPassphraseCache(prompt string) *surveyPassphraseCache {
	return &surveyPassphraseCache{prompt: prompt}
}

func (c *surveyPassphraseCache) Get() (string, bool) {
	if c.cached != nil {
		return *c.cached, true
	}
	var pass string
	q := &survey.Password{Message: c.prompt}
	if err := survey.AskOne(q, &pass); err != nil || pass == "" {
		return "", false
	}
	c.cached = &pass
	return pass, true
}

func (c *surveyPassphraseCache) Forget() {
	c.cached = nil
}
