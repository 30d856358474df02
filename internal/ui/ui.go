// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ui applies widget state to a page. It knows the element
// identifiers of the search controls and the results container, and nothing
// about searching.
package ui

// Element identifiers. Every control exists in a desktop and a mobile variant;
// the results container is shared.
const (
	InputSearch              = "inputSearch"
	ButtonSubmitSearch       = "buttonSubmitSearch"
	IconSearch               = "iconSearch"
	InputSearchMobile        = "inputSearchMobile"
	ButtonSubmitSearchMobile = "buttonSubmitSearchMobile"
	IconSearchMobile         = "iconSearchMobile"
	MainContent              = "main-content"
)

// Icon classes.
const (
	IconIdle    = "fa fa-search"
	IconLoading = "fa fa-spinner"
)

// Controls lists the inputs and buttons disabled while a search is running.
var Controls = []string{InputSearch, ButtonSubmitSearch, InputSearchMobile, ButtonSubmitSearchMobile}

// Icons lists the status icons.
var Icons = []string{IconSearch, IconSearchMobile}

// Page is the set of element mutations the widget performs. Unknown ids are
// ignored.
type Page interface {
	SetDisabled(id string, disabled bool)
	SetClass(id, class string)
	SetInnerHTML(id, html string)
}

// SetBusy disables or re-enables every control and switches the icons
// between the loading and the idle state.
func SetBusy(p Page, busy bool) {
	icon := IconIdle
	if busy {
		icon = IconLoading
	}
	for _, id := range Controls {
		p.SetDisabled(id, busy)
	}
	for _, id := range Icons {
		p.SetClass(id, icon)
	}
}

// ShowContent replaces the whole content of the results container.
func ShowContent(p Page, html string) {
	p.SetInnerHTML(MainContent, html)
}
