package deployment

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/hupe1980/impulsego/model"
)

// Header constant names mapped into model.Metadata.
const (
	defInputWidth         = "EI_CLASSIFIER_INPUT_WIDTH"
	defInputHeight        = "EI_CLASSIFIER_INPUT_HEIGHT"
	defInputFrames        = "EI_CLASSIFIER_INPUT_FRAMES"
	defLabelCount         = "EI_CLASSIFIER_LABEL_COUNT"
	defProjectName        = "EI_CLASSIFIER_PROJECT_NAME"
	defProjectOwner       = "EI_CLASSIFIER_PROJECT_OWNER"
	defProjectID          = "EI_CLASSIFIER_PROJECT_ID"
	defDeployVersion      = "EI_CLASSIFIER_PROJECT_DEPLOY_VERSION"
	defSensor             = "EI_CLASSIFIER_SENSOR"
	defInferencingEngine  = "EI_CLASSIFIER_INFERENCING_ENGINE"
	defIntervalMS         = "EI_CLASSIFIER_INTERVAL_MS"
	defFrequency          = "EI_CLASSIFIER_FREQUENCY"
	defSliceSize          = "EI_CLASSIFIER_SLICE_SIZE"
	defSlicesPerWindow    = "EI_CLASSIFIER_SLICES_PER_MODEL_WINDOW"
	defHasAnomaly         = "EI_CLASSIFIER_HAS_ANOMALY"
	defObjectDetection    = "EI_CLASSIFIER_OBJECT_DETECTION"
	defObjectTracking     = "EI_CLASSIFIER_OBJECT_TRACKING_ENABLED"
	defRawSampleCount     = "EI_CLASSIFIER_RAW_SAMPLE_COUNT"
	defRawSamplesPerFrame = "EI_CLASSIFIER_RAW_SAMPLES_PER_FRAME"
	defDSPInputFrameSize  = "EI_CLASSIFIER_DSP_INPUT_FRAME_SIZE"
)

// categoriesMarker introduces the generated label array in the header.
const categoriesMarker = "ei_classifier_inferencing_categories"

// resolveLimit caps identifier-chain resolution; generated headers never
// nest references deeper than a handful of hops.
const resolveLimit = 10

// ParseMetadataHeader parses a generated model metadata header into
// model.Metadata. Only EI_CLASSIFIER_* and EI_ANOMALY_TYPE_* constants are
// considered; values referencing other constants are resolved through the
// chain. Constants the header does not carry stay zero.
func ParseMetadataHeader(r io.Reader) (*model.Metadata, error) {
	defs := make(map[string]string)
	var labels []string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if strings.Contains(line, categoriesMarker) && strings.Contains(line, "{") {
			labels = parseQuotedList(line)
			continue
		}

		name, value, ok := parseDefine(line)
		if !ok {
			continue
		}
		if !strings.HasPrefix(name, "EI_CLASSIFIER_") && !strings.HasPrefix(name, "EI_ANOMALY_TYPE_") {
			continue
		}
		if _, dup := defs[name]; dup {
			continue
		}
		defs[name] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	p := &headerParser{defs: defs}
	md := &model.Metadata{
		InputWidth:         p.intOr(defInputWidth, 0),
		InputHeight:        p.intOr(defInputHeight, 0),
		InputFrames:        p.intOr(defInputFrames, 1),
		LabelCount:         p.intOr(defLabelCount, 0),
		Labels:             labels,
		ProjectName:        p.str(defProjectName),
		ProjectOwner:       p.str(defProjectOwner),
		ProjectID:          p.intOr(defProjectID, 0),
		DeployVersion:      p.intOr(defDeployVersion, 0),
		Sensor:             p.intOr(defSensor, -1),
		InferencingEngine:  p.intOr(defInferencingEngine, 0),
		IntervalMS:         p.intOr(defIntervalMS, 0),
		Frequency:          p.intOr(defFrequency, 0),
		HasAnomaly:         p.boolOr(defHasAnomaly, false),
		HasObjectDetection: p.boolOr(defObjectDetection, false),
		HasObjectTracking:  p.boolOr(defObjectTracking, false),
		RawSampleCount:     p.intOr(defRawSampleCount, 0),
		RawSamplesPerFrame: p.intOr(defRawSamplesPerFrame, 0),
		InputFeaturesCount: p.intOr(defDSPInputFrameSize, 0),
	}

	md.SliceSize = p.sliceSize(md.RawSampleCount)

	if md.LabelCount == 0 && len(labels) > 0 {
		md.LabelCount = len(labels)
	}

	return md, nil
}

type headerParser struct {
	defs map[string]string
}

// resolve follows identifier references until a literal is found.
func (p *headerParser) resolve(name string) (string, bool) {
	current := name
	for n := 0; n < resolveLimit; n++ {
		val, ok := p.defs[current]
		if !ok {
			return "", false
		}
		if isLiteral(val) {
			return val, true
		}
		current = val
	}
	return "", false
}

func (p *headerParser) intOr(name string, def int) int {
	val, ok := p.resolve(name)
	if !ok {
		return def
	}
	if n, err := strconv.Atoi(val); err == nil {
		return n
	}
	// Float-valued constants like interval or frequency are truncated.
	if f, err := strconv.ParseFloat(strings.TrimSuffix(val, "f"), 64); err == nil {
		return int(f)
	}
	return def
}

func (p *headerParser) boolOr(name string, def bool) bool {
	val, ok := p.resolve(name)
	if !ok {
		return def
	}
	if n, err := strconv.Atoi(val); err == nil {
		return n != 0
	}
	return def
}

func (p *headerParser) str(name string) string {
	val, ok := p.resolve(name)
	if !ok {
		return ""
	}
	return strings.Trim(val, `"`)
}

// sliceSize reads the slice size directly, or derives it from the raw
// sample count and the slices-per-window constant when the header defines
// it as an expression over them.
func (p *headerParser) sliceSize(rawSampleCount int) int {
	if n := p.intOr(defSliceSize, 0); n > 0 {
		return n
	}
	perWindow := p.intOr(defSlicesPerWindow, 0)
	if perWindow > 0 {
		return rawSampleCount / perWindow
	}
	return 0
}

// parseDefine splits one "#define NAME VALUE" line. Trailing comments are
// stripped; values keep internal whitespace.
func parseDefine(line string) (name, value string, ok bool) {
	rest, found := strings.CutPrefix(line, "#define ")
	if !found {
		return "", "", false
	}

	if i := strings.Index(rest, "//"); i >= 0 {
		rest = rest[:i]
	}
	if i := strings.Index(rest, "/*"); i >= 0 {
		rest = rest[:i]
	}

	fields := strings.Fields(rest)
	if len(fields) < 2 {
		return "", "", false
	}
	return fields[0], strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(rest), fields[0])), true
}

// isLiteral reports whether val is a string, integer or float literal as
// opposed to an identifier reference.
func isLiteral(val string) bool {
	if strings.HasPrefix(val, `"`) && strings.HasSuffix(val, `"`) {
		return true
	}
	if _, err := strconv.Atoi(val); err == nil {
		return true
	}
	if _, err := strconv.ParseFloat(strings.TrimSuffix(val, "f"), 64); err == nil {
		return true
	}
	return false
}

func parseQuotedList(line string) []string {
	var out []string
	for {
		start := strings.IndexByte(line, '"')
		if start < 0 {
			return out
		}
		line = line[start+1:]
		end := strings.IndexByte(line, '"')
		if end < 0 {
			return out
		}
		out = append(out, line[:end])
		line = line[end+1:]
	}
}
