package domain

type Field string

const (
	FieldModel                Field = "Model"
	FieldMake                 Field = "Make"
	FieldLensModel            Field = "LensModel"
	FieldParam                Field = "Param"
	FieldDatetime             Field = "Datetime"
	FieldDate                 Field = "Date"
	FieldCustom               Field = "Custom"
	FieldNone                 Field = "None"
	FieldLensMakeLensModel    Field = "LensMake_LensModel"
	FieldCameraModelLensModel Field = "CameraModel_LensModel"
	FieldTotalPixel           Field = "TotalPixel"
	FieldCameraMakeModel      Field = "CameraMake_CameraModel"
	FieldFilename             Field = "Filename"
	FieldDateFilename         Field = "Date_Filename"
	FieldDatetimeFilename     Field = "Datetime_Filename"
	FieldGeoInfo              Field = "GeoInfo"
)

var fieldDescriptions = map[Field]string{
	FieldModel:                "Camera model (eg. Nikon Z7)",
	FieldMake:                 "Camera make (eg. Nikon)",
	FieldLensModel:            "Lens model (eg. Nikkor 24-70 f/2.8)",
	FieldParam:                "Shooting parameters (eg. 50mm f/1.8 1/1000s ISO100)",
	FieldDatetime:             "Capture time (eg. 2023-01-01 12:00)",
	FieldDate:                 "Capture date (eg. 2023-01-01)",
	FieldCustom:               "Custom text",
	FieldNone:                 "(empty)",
	FieldLensMakeLensModel:    "Lens make + lens model",
	FieldCameraModelLensModel: "Camera model + lens model",
	FieldTotalPixel:           "Total pixels (MP)",
	FieldCameraMakeModel:      "Camera make + camera model",
	FieldFilename:             "File name",
	FieldDateFilename:         "Date + file name",
	FieldDatetimeFilename:     "Date time + file name",
	FieldGeoInfo:              "GPS position",
}

func (f Field) Known() bool {
	_, ok := fieldDescriptions[f]
	return ok
}

func (f Field) Description() string {
	return fieldDescriptions[f]
}

// DefaultValue is rendered whenever the metadata behind a field is missing.
const DefaultValue = "--"

// Element is one of the four text slots of a watermark strip.
type Element struct {
	Name  Field  `yaml:"name" json:"name" validate:"required,element_field"`
	Value string `yaml:"value" json:"value" validate:"required_if=Name Custom"`
	Bold  bool   `yaml:"is_bold" json:"is_bold"`
	// Color overrides the layout foreground color when set.
	Color string `yaml:"color,omitempty" json:"color,omitempty" validate:"omitempty,hex_color"`
}

func (e Element) Skipped() bool {
	return e.Name == FieldNone || e.Name == ""
}

type Elements struct {
	LeftTop     Element `yaml:"left_top" json:"left_top"`
	LeftBottom  Element `yaml:"left_bottom" json:"left_bottom"`
	RightTop    Element `yaml:"right_top" json:"right_top"`
	RightBottom Element `yaml:"right_bottom" json:"right_bottom"`
}
