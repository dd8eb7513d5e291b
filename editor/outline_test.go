package editor

import (
	"testing"

	"github.com/phanxgames/arbor"
	"github.com/phanxgames/arbor/treeview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
)

func TestInfer(t *testing.T) {
	tests := []struct {
		c    Components
		want InferredType
	}{
		{Components{}, TypeNone},
		{Components{PointLight: true, Mesh: true}, TypePointLight},
		{Components{SpotLight: true, Camera: true}, TypeSpotLight},
		{Components{DirectionalLight: true}, TypeDirectionalLight},
		{Components{Camera: true, Mesh: true}, TypeCamera},
		{Components{Mesh: true}, TypeMesh},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Infer(tt.c), "%+v", tt.c)
	}
}

func TestItemTitle(t *testing.T) {
	it := &Item{Type: TypePointLight}
	assert.Equal(t, "[Point Light]", it.Title())
	assert.Equal(t, arbor.NamedIcon("PointLight"), it.Icon())

	it.Name = "Lamp"
	assert.Equal(t, "Lamp", it.Title())
	assert.Equal(t, "[Entity]", (&Item{}).Title())
}

func TestOutlineEdits(t *testing.T) {
	o := NewOutline(donburi.NewWorld())
	level := o.Spawn("Level", Components{}, donburi.Null)
	light := o.Spawn("", Components{SpotLight: true}, level)
	o.Drain()

	o.Rename(light, "")
	o.Retype(light, Components{SpotLight: true, Mesh: true})
	assert.Empty(t, o.Drain().Changed, "unchanged name and type record nothing")

	o.Retype(light, Components{Camera: true})
	it, ok := o.Item(light)
	require.True(t, ok)
	assert.Equal(t, "[Camera]", it.Title())
	assert.Equal(t, []donburi.Entity{light}, o.Drain().Changed)

	o.SetParent(light, donburi.Null)
	assert.Equal(t, []donburi.Entity{light}, o.Drain().Orphaned)
	o.SetParent(light, level)
	assert.Len(t, o.Drain().Reparented, 1)

	o.Select(light)
	sel, ok := o.Selected()
	require.True(t, ok)
	assert.Equal(t, light, sel)
	it, _ = o.Item(light)
	assert.True(t, it.IsSelected())

	o.Despawn(level)
	_, ok = o.Selected()
	assert.False(t, ok)
	assert.Equal(t, 0, o.Len())
	assert.Equal(t, []donburi.Entity{light, level}, o.Drain().Removed)
}

func TestOutlineInTreeView(t *testing.T) {
	o := NewOutline(donburi.NewWorld())
	SampleScene(o)

	scene := arbor.NewScene()
	panel := arbor.NewBox("outline", arbor.Style{Width: arbor.Px(200)})
	scene.Root().AddChild(panel)
	tv := treeview.New[donburi.Entity](panel, o.Source(), treeview.Config{})
	tv.Tick(o.Drain())
	assert.Equal(t, o.Len(), tv.Registry().Len())

	var titles []string
	for _, node := range tv.Content().Children() {
		label := node.ChildAt(0).ChildAt(2)
		titles = append(titles, label.Text)
	}
	assert.Equal(t, []string{"Level", "Main Camera", "[Directional Light]"}, titles)
}
