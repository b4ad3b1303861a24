package glrender

import (
	_ "embed"
	"log"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/pkg/errors"
)

//go:embed shaders/default.vert
var defaultVertexShader string

//go:embed shaders/default.frag
var defaultFragmentShader string

var defaultProgram *DefaultProgram

type DefaultProgram struct {
	*Program

	UProjectView int32
	UModel       int32
	UTexture     int32
	UColor       int32
	UUseTexture  int32

	APosition int32
	ANormal   int32
	AUV       int32
}

func GetDefaultProgram() *DefaultProgram {
	if defaultProgram == nil {
		dp := &DefaultProgram{}
		defaultProgram = dp

		dp.Program = MustLoadProgram(defaultVertexShader, defaultFragmentShader)

		dp.UProjectView = gl.GetUniformLocation(dp.Id, gl.Str("umProjectView\x00"))
		dp.UModel = gl.GetUniformLocation(dp.Id, gl.Str("umModel\x00"))
		dp.UTexture = gl.GetUniformLocation(dp.Id, gl.Str("uTexture\x00"))
		dp.UColor = gl.GetUniformLocation(dp.Id, gl.Str("uColor\x00"))
		dp.UUseTexture = gl.GetUniformLocation(dp.Id, gl.Str("uUseTexture\x00"))

		dp.APosition = gl.GetAttribLocation(dp.Id, gl.Str("aPosition"+"\x00"))
		dp.ANormal = gl.GetAttribLocation(dp.Id, gl.Str("aNormal"+"\x00"))
		dp.AUV = gl.GetAttribLocation(dp.Id, gl.Str("aUV"+"\x00"))
	}
	return defaultProgram
}

type Program struct {
	Id                           uint32
	VertexShader, FragmentShader uint32
}

func (p *Program) Delete() {
	gl.DetachShader(p.Id, p.VertexShader)
	gl.DetachShader(p.Id, p.FragmentShader)
	gl.DeleteProgram(p.Id)
	gl.DeleteShader(p.VertexShader)
	gl.DeleteShader(p.FragmentShader)
}

func LoadProgram(vertexShaderText, fragmentShaderText string) (*Program, error) {
	p := &Program{}

	p.Id = gl.CreateProgram()

	if vs, err := LoadShader(gl.VERTEX_SHADER, vertexShaderText); err != nil {
		return nil, errors.Wrap(err, "vertex shader")
	} else {
		p.VertexShader = vs
	}

	if fs, err := LoadShader(gl.FRAGMENT_SHADER, fragmentShaderText); err != nil {
		gl.DeleteShader(p.VertexShader)
		return nil, errors.Wrap(err, "fragment shader")
	} else {
		p.FragmentShader = fs
	}

	gl.AttachShader(p.Id, p.VertexShader)
	gl.AttachShader(p.Id, p.FragmentShader)
	gl.LinkProgram(p.Id)

	var isLinked int32
	gl.GetProgramiv(p.Id, gl.LINK_STATUS, &isLinked)
	if isLinked == gl.FALSE {
		var logSize int32
		gl.GetProgramiv(p.Id, gl.INFO_LOG_LENGTH, &logSize)
		buf := make([]uint8, logSize+1)
		gl.GetProgramInfoLog(p.Id, int32(len(buf)), &logSize, &buf[0])
		errString := string(buf[:logSize])
		log.Printf("Failed to link program:\n%s", errString)

		p.Delete()
		return nil, errors.Errorf("failed to link program: %q", errString)
	} else {
		return p, nil
	}
}

func MustLoadProgram(vertexShaderText, fragmentShaderText string) *Program {
	program, err := LoadProgram(vertexShaderText, fragmentShaderText)
	if err != nil {
		panic(err)
	}
	return program
}

func LoadShader(xtype uint32, text string) (shader uint32, err error) {
	glShaderSource := func(handle uint32, source string) {
		csource, free := gl.Strs(source + "\x00")
		defer free()

		gl.ShaderSource(handle, 1, csource, nil)
	}

	shader = gl.CreateShader(xtype)
	glShaderSource(shader, text)
	gl.CompileShader(shader)

	var success int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &success)
	if success == gl.FALSE {
		var logSize int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logSize)
		buf := make([]uint8, logSize+1)
		gl.GetShaderInfoLog(shader, int32(len(buf)), &logSize, &buf[0])
		errString := string(buf[:logSize])
		log.Printf("Failed to compile shader:\n%s", errString)

		gl.DeleteShader(shader)
		return gl.INVALID_INDEX, errors.Errorf("failed to compile shader: %q", errString)
	} else {
		return shader, nil
	}
}
