package definition

import "sort"

// memoryRange is an inclusive MiB range walked in fixed steps.
type memoryRange struct {
	min, max, step int
}

// fargateShapes lists the memory sizes Fargate accepts for each whole vCPU count.
var fargateShapes = map[int]memoryRange{
	1:  {min: 2048, max: 8192, step: 1024},
	2:  {min: 4096, max: 16384, step: 1024},
	4:  {min: 8192, max: 30720, step: 1024},
	8:  {min: 16384, max: 61440, step: 4096},
	16: {min: 32768, max: 122880, step: 8192},
}

// FargateSupports reports whether vcpus/memoryMiB is an accepted Fargate pair.
func FargateSupports(vcpus, memoryMiB int) bool {
	r, ok := fargateShapes[vcpus]
	if !ok {
		return false
	}
	if memoryMiB < r.min || memoryMiB > r.max {
		return false
	}
	return (memoryMiB-r.min)%r.step == 0
}

// FargateMemoryOptions lists the accepted memory sizes for vcpus, smallest first.
func FargateMemoryOptions(vcpus int) []int {
	r, ok := fargateShapes[vcpus]
	if !ok {
		return nil
	}
	var out []int
	for m := r.min; m <= r.max; m += r.step {
		out = append(out, m)
	}
	return out
}

// FargateVCPUOptions lists the vCPU counts Fargate accepts, ascending.
func FargateVCPUOptions() []int {
	out := make([]int, 0, len(fargateShapes))
	for v := range fargateShapes {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}
