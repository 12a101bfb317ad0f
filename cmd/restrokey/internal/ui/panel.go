// Package ui renders the settings and layout preview panel.
package ui

import (
	"fmt"
	"image"
	"strings"
	"sync"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"restrokey/cmd/restrokey/internal/theme"
	keylayout "restrokey/internal/layout"
	"restrokey/internal/settings"
)

const maxSuggestions = 8

// Panel is the main UI component: a status header, the interception
// settings, and a searchable preview of the active layout.
type Panel struct {
	theme *theme.Theme
	state *settings.State

	// The preview table can be swapped by the layout watcher; the
	// engine's own table never changes at runtime.
	mu       sync.Mutex
	table    *keylayout.Table
	notice   string
	noticeOK bool

	enabled     widget.Bool
	hotkey      widget.Bool
	intercept   widget.Bool
	suggestions widget.Bool
	script      widget.Enum

	search   widget.Editor
	category widget.Enum
	grid     widget.List
}

// NewPanel creates the panel over the shared state and the preview
// table.
func NewPanel(t *theme.Theme, state *settings.State, table *keylayout.Table) *Panel {
	p := &Panel{
		theme: t,
		state: state,
		table: table,
		grid: widget.List{
			List: layout.List{Axis: layout.Vertical},
		},
	}
	p.search.SingleLine = true

	snap := state.Snapshot()
	p.enabled.Value = snap.Enabled
	p.hotkey.Value = snap.HotkeyEnabled
	p.intercept.Value = snap.InterceptAll
	p.suggestions.Value = state.ShowSuggestions()
	p.script.Value = snap.ActiveScript.String()
	p.category.Value = "all"
	return p
}

// SetTable swaps the preview table after a successful layout reload.
func (p *Panel) SetTable(table *keylayout.Table, notice string) {
	p.mu.Lock()
	p.table = table
	p.notice = notice
	p.noticeOK = true
	p.mu.Unlock()
}

// SetNotice shows a status line under the preview, e.g. a reload
// error.
func (p *Panel) SetNotice(notice string, ok bool) {
	p.mu.Lock()
	p.notice = notice
	p.noticeOK = ok
	p.mu.Unlock()
}

// Layout renders one frame and folds widget changes back into the
// shared state.
func (p *Panel) Layout(gtx layout.Context) layout.Dimensions {
	p.sync(gtx)

	paint.Fill(gtx.Ops, p.theme.Palette.Background)

	return layout.UniformInset(p.theme.Config.Padding).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(p.layoutHeader),
			layout.Rigid(layout.Spacer{Height: p.theme.Config.Spacing * 2}.Layout),
			layout.Rigid(p.layoutSettings),
			layout.Rigid(layout.Spacer{Height: p.theme.Config.Spacing * 2}.Layout),
			layout.Flexed(1, p.layoutPreview),
		)
	})
}

// sync runs the widget update cycle. Checkboxes write through to the
// shared state; the script radio additionally reads back so a hotkey
// toggle from the hook thread shows up here.
func (p *Panel) sync(gtx layout.Context) {
	if p.enabled.Update(gtx) {
		p.state.SetEnabled(p.enabled.Value)
	}
	if p.hotkey.Update(gtx) {
		p.state.SetHotkeyEnabled(p.hotkey.Value)
	}
	if p.intercept.Update(gtx) {
		p.state.SetInterceptAll(p.intercept.Value)
	}
	if p.suggestions.Update(gtx) {
		p.state.SetShowSuggestions(p.suggestions.Value)
	}
	if p.script.Update(gtx) {
		if p.script.Value == settings.Latin.String() {
			p.state.SetActiveScript(settings.Latin)
		} else {
			p.state.SetActiveScript(settings.Bengali)
		}
	} else {
		p.script.Value = p.state.ActiveScript().String()
	}
	p.category.Update(gtx)
}

func (p *Panel) layoutHeader(gtx layout.Context) layout.Dimensions {
	snap := p.state.Snapshot()

	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Baseline}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			title := material.H6(p.theme.Theme, "Restro Keyboard")
			title.Color = p.theme.Palette.Primary
			title.TextSize = p.theme.Config.FontTitle
			return title.Layout(gtx)
		}),
		layout.Rigid(layout.Spacer{Width: p.theme.Config.Spacing * 2}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			name := "বাংলা"
			clr := p.theme.Palette.Success
			if !snap.Enabled {
				name = "off"
				clr = p.theme.Palette.TextMuted
			} else if snap.ActiveScript == settings.Latin {
				name = "English"
				clr = p.theme.Palette.Warning
			}
			badge := material.Body1(p.theme.Theme, name)
			badge.Color = clr
			return badge.Layout(gtx)
		}),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			hint := material.Caption(p.theme.Theme, "Ctrl+Space switches script")
			hint.Color = p.theme.Palette.TextMuted
			return layout.E.Layout(gtx, hint.Layout)
		}),
	)
}

func (p *Panel) layoutSettings(gtx layout.Context) layout.Dimensions {
	check := func(b *widget.Bool, label string) layout.FlexChild {
		return layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			cb := material.CheckBox(p.theme.Theme, b, label)
			cb.Color = p.theme.Palette.Text
			cb.IconColor = p.theme.Palette.Primary
			return layout.Inset{Right: p.theme.Config.Spacing * 2}.Layout(gtx, cb.Layout)
		})
	}
	radio := func(key, label string) layout.FlexChild {
		return layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			rb := material.RadioButton(p.theme.Theme, &p.script, key, label)
			rb.Color = p.theme.Palette.Text
			rb.IconColor = p.theme.Palette.Primary
			return layout.Inset{Right: p.theme.Config.Spacing * 2}.Layout(gtx, rb.Layout)
		})
	}

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
				check(&p.enabled, "Enable keyboard"),
				check(&p.hotkey, "Ctrl+Space hotkey"),
				check(&p.intercept, "Transliterate letters and digits"),
				check(&p.suggestions, "Show suggestions"),
			)
		}),
		layout.Rigid(layout.Spacer{Height: p.theme.Config.Spacing}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
				radio(settings.Bengali.String(), "Bengali"),
				radio(settings.Latin.String(), "English"),
			)
		}),
	)
}

func (p *Panel) layoutPreview(gtx layout.Context) layout.Dimensions {
	p.mu.Lock()
	table := p.table
	notice := p.notice
	noticeOK := p.noticeOK
	p.mu.Unlock()

	query := strings.ToLower(strings.TrimSpace(p.search.Text()))
	rules := p.filterRules(table, query)

	children := []layout.FlexChild{
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return p.layoutSearchRow(gtx, table)
		}),
		layout.Rigid(layout.Spacer{Height: p.theme.Config.Spacing}.Layout),
	}

	if p.suggestions.Value && query != "" {
		children = append(children,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return p.layoutSuggestions(gtx, rules, query)
			}),
			layout.Rigid(layout.Spacer{Height: p.theme.Config.Spacing}.Layout),
		)
	}

	children = append(children, layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
		return p.layoutGrid(gtx, rules)
	}))

	if notice != "" {
		children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			l := material.Caption(p.theme.Theme, notice)
			if noticeOK {
				l.Color = p.theme.Palette.Success
			} else {
				l.Color = p.theme.Palette.Error
			}
			return layout.Inset{Top: p.theme.Config.Spacing}.Layout(gtx, l.Layout)
		}))
	}

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx, children...)
}

func (p *Panel) layoutSearchRow(gtx layout.Context, table *keylayout.Table) layout.Dimensions {
	catRadio := func(key, label string) layout.FlexChild {
		return layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			rb := material.RadioButton(p.theme.Theme, &p.category, key, label)
			rb.Color = p.theme.Palette.TextMuted
			rb.IconColor = p.theme.Palette.Primary
			rb.TextSize = p.theme.Config.FontCaption
			return layout.Inset{Right: p.theme.Config.Spacing}.Layout(gtx, rb.Layout)
		})
	}

	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			gtx.Constraints.Min.X = gtx.Dp(160)
			gtx.Constraints.Max.X = gtx.Dp(160)
			ed := material.Editor(p.theme.Theme, &p.search, "search keys")
			ed.Color = p.theme.Palette.Text
			ed.HintColor = p.theme.Palette.TextMuted
			return p.drawBox(gtx, func(gtx layout.Context) layout.Dimensions {
				return layout.UniformInset(unit.Dp(6)).Layout(gtx, ed.Layout)
			})
		}),
		layout.Rigid(layout.Spacer{Width: p.theme.Config.Spacing * 2}.Layout),
		catRadio("all", "all"),
		catRadio(keylayout.Vowel.String(), "vowels"),
		catRadio(keylayout.Consonant.String(), "consonants"),
		catRadio(keylayout.Digit.String(), "digits"),
		catRadio(keylayout.Special.String(), "specials"),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			count := material.Caption(p.theme.Theme,
				fmt.Sprintf("%s: %d rules", table.Name(), table.Len()))
			count.Color = p.theme.Palette.TextMuted
			return layout.E.Layout(gtx, count.Layout)
		}),
	)
}

// filterRules applies the category filter and key substring search to the
// table rules plus the display-only special marks.
func (p *Panel) filterRules(table *keylayout.Table, query string) []keylayout.Rule {
	all := table.Entries()
	all = append(all, keylayout.Specials...)

	var out []keylayout.Rule
	for _, r := range all {
		if p.category.Value != "all" && r.Glyph.Category.String() != p.category.Value {
			continue
		}
		if query != "" && !strings.Contains(r.Key, query) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func (p *Panel) layoutSuggestions(gtx layout.Context, rules []keylayout.Rule, query string) layout.Dimensions {
	var parts []string
	for _, r := range rules {
		parts = append(parts, r.Key+" "+r.Glyph.Text)
		if len(parts) == maxSuggestions {
			break
		}
	}
	text := "no matches for \"" + query + "\""
	if len(parts) > 0 {
		text = strings.Join(parts, "   ")
	}
	l := material.Body2(p.theme.Theme, text)
	l.Color = p.theme.Palette.Primary
	l.TextSize = unit.Sp(p.state.FontSize())
	return p.drawBox(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.UniformInset(unit.Dp(8)).Layout(gtx, l.Layout)
	})
}

func (p *Panel) layoutGrid(gtx layout.Context, rules []keylayout.Rule) layout.Dimensions {
	return p.drawBox(gtx, func(gtx layout.Context) layout.Dimensions {
		return material.List(p.theme.Theme, &p.grid).Layout(gtx, len(rules), func(gtx layout.Context, i int) layout.Dimensions {
			return p.layoutRow(gtx, rules[i])
		})
	})
}

func (p *Panel) layoutRow(gtx layout.Context, r keylayout.Rule) layout.Dimensions {
	return layout.Inset{
		Top: unit.Dp(4), Bottom: unit.Dp(4),
		Left: unit.Dp(12), Right: unit.Dp(12),
	}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Baseline}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				gtx.Constraints.Min.X = gtx.Dp(80)
				key := material.Body2(p.theme.Theme, r.Key)
				key.Color = p.theme.Palette.TextMuted
				key.Font.Typeface = "monospace"
				return key.Layout(gtx)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				gtx.Constraints.Min.X = gtx.Dp(80)
				glyph := material.Body1(p.theme.Theme, r.Glyph.Text)
				glyph.Color = p.theme.Palette.Text
				glyph.TextSize = unit.Sp(p.state.FontSize())
				return glyph.Layout(gtx)
			}),
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				cat := material.Caption(p.theme.Theme, r.Glyph.Category.String())
				cat.Color = p.theme.Palette.TextMuted
				return layout.E.Layout(gtx, cat.Layout)
			}),
		)
	})
}

// drawBox paints a rounded surface rectangle behind the widget.
func (p *Panel) drawBox(gtx layout.Context, w layout.Widget) layout.Dimensions {
	return layout.Background{}.Layout(gtx,
		func(gtx layout.Context) layout.Dimensions {
			size := gtx.Constraints.Min
			rect := clip.UniformRRect(image.Rect(0, 0, size.X, size.Y),
				int(gtx.Dp(p.theme.Config.CornerRadius))).Op(gtx.Ops)
			paint.FillShape(gtx.Ops, p.theme.Palette.Surface, rect)
			return layout.Dimensions{Size: size}
		},
		w,
	)
}
