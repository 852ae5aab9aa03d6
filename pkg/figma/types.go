package figma

// FileResponse represents the complete response from the Figma file API endpoint.
// It contains the file metadata, document structure, declared styles and components,
// and schema version information.
type FileResponse struct {
	FileKey       string               `json:"fileKey,omitempty"` // set by the client or loader, not part of the API payload
	Name          string               `json:"name"`
	LastModified  string               `json:"lastModified"`
	ThumbnailURL  string               `json:"thumbnailUrl"`
	Version       string               `json:"version"`
	Document      Node                 `json:"document"`
	Styles        map[string]Style     `json:"styles"`
	Components    map[string]Component `json:"components"`
	SchemaVersion int                  `json:"schemaVersion"`
}

// Meta returns the file-level metadata carried into extraction results.
func (f *FileResponse) Meta() FileMeta {
	return FileMeta{
		ID:           f.FileKey,
		Name:         f.Name,
		Version:      f.Version,
		LastModified: f.LastModified,
		ThumbnailURL: f.ThumbnailURL,
	}
}

// FileMeta is the subset of file metadata that accompanies every extraction result.
type FileMeta struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Version      string `json:"version"`
	LastModified string `json:"lastModified"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

// Component represents a Figma component definition with its metadata.
// Components are reusable design elements that can be instantiated throughout the file.
type Component struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Style represents a declared Figma style definition. Styles are tagged by type:
// colors (FILL), text styles (TEXT), effects (EFFECT), or layout grids (GRID).
// The payload fields carry the resolved style values for the matching type.
type Style struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
	StyleType   string `json:"styleType"`

	// Resolved payloads, populated according to StyleType.
	Fills       []Paint      `json:"fills,omitempty"`
	TextStyle   *TypeStyle   `json:"style,omitempty"`
	Effects     []Effect     `json:"effects,omitempty"`
	LayoutGrids []LayoutGrid `json:"layoutGrids,omitempty"`
}

// Node represents a single element in the Figma document tree hierarchy.
// Nodes can be frames, groups, text, shapes, or other Figma elements, each with
// their own properties such as fills, strokes, effects, layout settings, and
// children. The order of Children is the document z-order and must be preserved.
type Node struct {
	ID                  string            `json:"id"`
	Name                string            `json:"name"`
	Type                string            `json:"type"`
	Children            []Node            `json:"children,omitempty"`
	BackgroundColor     *Color            `json:"backgroundColor,omitempty"`
	Fills               []Paint           `json:"fills,omitempty"`
	Strokes             []Paint           `json:"strokes,omitempty"`
	StrokeWeight        float64           `json:"strokeWeight,omitempty"`
	CornerRadius        float64           `json:"cornerRadius,omitempty"`
	Effects             []Effect          `json:"effects,omitempty"`
	Characters          string            `json:"characters,omitempty"`
	Style               *TypeStyle        `json:"style,omitempty"`
	AbsoluteBoundingBox *Rectangle        `json:"absoluteBoundingBox,omitempty"`
	Constraints         *LayoutConstraint `json:"constraints,omitempty"`
	LayoutMode          string            `json:"layoutMode,omitempty"`
	LayoutGrids         []LayoutGrid      `json:"layoutGrids,omitempty"`
	PaddingLeft         float64           `json:"paddingLeft,omitempty"`
	PaddingRight        float64           `json:"paddingRight,omitempty"`
	PaddingTop          float64           `json:"paddingTop,omitempty"`
	PaddingBottom       float64           `json:"paddingBottom,omitempty"`
	ItemSpacing         float64           `json:"itemSpacing,omitempty"`
	ComponentID         string            `json:"componentId,omitempty"`
	TransitionNodeID    string            `json:"transitionNodeID,omitempty"`
	TransitionDuration  float64           `json:"transitionDuration,omitempty"`
}

// Color represents an RGBA color with float values ranging from 0 to 1.
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// Paint represents a fill or stroke applied to a Figma node.
// It includes the paint type (SOLID, GRADIENT_LINEAR, etc.), visibility,
// opacity, and color information. Visible is a pointer because the API omits
// the flag for visible paints; only an explicit false hides the paint.
type Paint struct {
	Type    string   `json:"type"`
	Visible *bool    `json:"visible,omitempty"`
	Opacity *float64 `json:"opacity,omitempty"`
	Color   *Color   `json:"color,omitempty"`
}

// IsVisible reports whether the paint should be rendered. Absent means visible.
func (p Paint) IsVisible() bool {
	return p.Visible == nil || *p.Visible
}

// EffectiveOpacity returns the paint opacity, defaulting to fully opaque.
func (p Paint) EffectiveOpacity() float64 {
	if p.Opacity == nil {
		return 1
	}
	return *p.Opacity
}

// Effect represents a visual effect applied to a Figma node such as drop shadows,
// inner shadows, or blur effects.
type Effect struct {
	Type      string  `json:"type"`
	Visible   bool    `json:"visible"`
	Radius    float64 `json:"radius,omitempty"`
	Color     *Color  `json:"color,omitempty"`
	Offset    *Vector `json:"offset,omitempty"`
	Spread    float64 `json:"spread,omitempty"`
	BlendMode string  `json:"blendMode,omitempty"`
}

// Vector represents a 2D coordinate or offset with X and Y values.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// TypeStyle represents comprehensive text styling properties from Figma.
type TypeStyle struct {
	FontFamily          string  `json:"fontFamily"`
	FontPostScriptName  string  `json:"fontPostScriptName"`
	FontWeight          float64 `json:"fontWeight"`
	FontSize            float64 `json:"fontSize"`
	LineHeightPx        float64 `json:"lineHeightPx"`
	LineHeightPercent   float64 `json:"lineHeightPercent"`
	LetterSpacing       float64 `json:"letterSpacing"`
	TextAlignHorizontal string  `json:"textAlignHorizontal"`
	TextAlignVertical   string  `json:"textAlignVertical"`
}

// Rectangle represents a bounding box with position (X, Y) and dimensions.
type Rectangle struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// LayoutConstraint defines how a node's position and size behave when its
// parent is resized. Constraints can be set for both vertical (TOP, BOTTOM,
// TOP_BOTTOM, CENTER, SCALE) and horizontal (LEFT, RIGHT, LEFT_RIGHT, CENTER,
// SCALE) directions.
type LayoutConstraint struct {
	Vertical   string `json:"vertical"`
	Horizontal string `json:"horizontal"`
}

// LayoutGrid describes a layout grid attached to a frame: columns, rows, or a
// uniform square grid.
type LayoutGrid struct {
	Pattern     string  `json:"pattern"` // COLUMNS, ROWS, GRID
	SectionSize float64 `json:"sectionSize,omitempty"`
	GutterSize  float64 `json:"gutterSize,omitempty"`
	Count       int     `json:"count,omitempty"`
	Alignment   string  `json:"alignment,omitempty"`
	Visible     *bool   `json:"visible,omitempty"`
}
