package tui

func renderConfirm(path string) string {
	content := "Delete \"" + path + "\" and all of its children?\n\n"
	content += "y yes    n no"
	return overlayBoxStyle.Render(content)
}

func renderErrorOverlay(message string) string {
	content := errorStyle.Render("Error") + "\n\n" + message + "\n\nenter / esc close"
	return overlayBoxStyle.Render(content)
}
