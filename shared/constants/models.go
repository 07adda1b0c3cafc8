package constants

type ModelKind string

const (
	ModelKindLinear       ModelKind = "linear"
	ModelKindRandomForest ModelKind = "random_forest"
	ModelKindSVR          ModelKind = "svr"
	ModelKindRemote       ModelKind = "remote"
)

func (k ModelKind) Valid() bool {
	switch k {
	case ModelKindLinear, ModelKindRandomForest, ModelKindSVR, ModelKindRemote:
		return true
	}
	return false
}
