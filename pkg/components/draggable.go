package components

import "github.com/caaaan/springbox/pkg/drag"

// DraggableComponent 持有元素的拖拽控制器
type DraggableComponent struct {
	Controller *drag.Controller
}
