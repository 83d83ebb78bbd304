package constant

const (
	ProjectName = "iconstudio"
	// UnsetInt marks an integer setting that has not been provided.
	UnsetInt = -1
)

// storage keys shared by every key-value backend.
const (
	SavedConfigsKey = "iconStudioConfigs"
	AutoSaveKey     = "autoSaveIcons"
)

const (
	MinZoom     = 50
	MaxZoom     = 200
	DefaultZoom = 100
	// ZoomButtonStep is applied by the zoom in/out controls.
	ZoomButtonStep = 25
	// ZoomWheelStep is applied per wheel notch.
	ZoomWheelStep = 10
)
