package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/gogpu/naga"

	"github.com/gogpu/sgexport/cache"
	"github.com/gogpu/sgexport/graph"
	"github.com/gogpu/sgexport/shadermap"
)

// DefaultEntryPoint is used for shader resources that name none.
const DefaultEntryPoint = "main"

// ShaderStages returns the stages of shaders compiled with defines and
// specialization constants. Requests with equal inputs share one record.
//
// Stages written in WGSL are compiled to SPIR-V with naga. A source that
// cannot be read or compiled is reported and exported without code.
func (c *ExportContext) ShaderStages(shaders []shadermap.ShaderResource, defines []string, constants []uint32) *graph.ShaderStagesData {
	key := shaderStagesKey(shaders, defines, constants)
	return c.shaderStages.GetOrCreate(key, func() *graph.ShaderStagesData {
		d := &graph.ShaderStagesData{
			ID: strconv.FormatUint(cache.StringHasher(key), 16),
		}
		for _, r := range shaders {
			entry := r.EntryPoint
			if entry == "" {
				entry = DefaultEntryPoint
			}
			d.Stages = append(d.Stages, &graph.ShaderStageData{
				Stages:             r.Stages.Flags(),
				EntryPoint:         entry,
				Source:             r.Source,
				CustomDefines:      defines,
				SpecializationData: constants,
				SPIRV:              c.compile(r.Source),
			})
		}
		return d
	})
}

func shaderStagesKey(shaders []shadermap.ShaderResource, defines []string, constants []uint32) string {
	var b strings.Builder
	for _, r := range shaders {
		fmt.Fprintf(&b, "%s:%d:%s;", r.Source, r.Stages, r.EntryPoint)
	}
	b.WriteByte('|')
	b.WriteString(strings.Join(defines, ","))
	b.WriteByte('|')
	for _, v := range constants {
		fmt.Fprintf(&b, "%d,", v)
	}
	return b.String()
}

// compile returns SPIR-V for WGSL sources and nil for anything else.
func (c *ExportContext) compile(source string) []byte {
	if !strings.EqualFold(filepath.Ext(source), ".wgsl") {
		return nil
	}
	wgsl, err := os.ReadFile(source) // #nosec G304 -- path comes from a shader mapping
	if err != nil {
		c.Report.Add("Shader '%s' cannot be read: %v", source, err)
		return nil
	}
	spirv, err := naga.Compile(string(wgsl))
	if err != nil {
		c.Report.Add("Shader '%s' failed to compile: %v", source, err)
		return nil
	}
	c.Log.Debug("shader compiled", "source", source, "bytes", len(spirv))
	return spirv
}

// appendDefines appends the defines not already in list.
func appendDefines(list []string, defines ...string) []string {
	for _, d := range defines {
		if d != "" && !slices.Contains(list, d) {
			list = append(list, d)
		}
	}
	return list
}
