package app

// Key binding constants used in the key handlers.
const (
	KeyQuit      = "q"
	KeyCtrlC     = "ctrl+c"
	KeySpace     = " "
	KeyTab       = "tab"
	KeyUp        = "up"
	KeyDown      = "down"
	KeyJ         = "j"
	KeyK         = "k"
	KeyEnter     = "enter"
	KeyEsc       = "esc"
	KeyBack      = "b"
	KeyBackspace = "backspace"
	KeySearch    = "/"
	KeyFavorite  = "f"
	KeyDelete    = "d"
	KeyConfirm   = "y"
	KeyImport    = "i"
	KeyReset     = "r"
)
