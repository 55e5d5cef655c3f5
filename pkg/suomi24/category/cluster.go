package category

import (
	"fmt"

	"github.com/cognicore/suomi24/pkg/suomi24/internalerr"
)

// Cluster is a k-means derived thread category. The value is the cluster
// index the label was assigned to.
type Cluster int

const (
	ShortText Cluster = iota
	ClusterQuestion
	QuestionDescriptive
	NegativeText
	ClusterAnnouncement
	Rant
)

var clusterNames = [...]string{
	ShortText:           "Short Text",
	ClusterQuestion:     "Question",
	QuestionDescriptive: "Question/Descriptive",
	NegativeText:        "Negative text",
	ClusterAnnouncement: "Announcement",
	Rant:                "Rant",
}

// NumClusters is the number of k-means clusters.
const NumClusters = len(clusterNames)

func (c Cluster) String() string {
	if c < 0 || int(c) >= len(clusterNames) {
		return fmt.Sprintf("Cluster(%d)", int(c))
	}
	return clusterNames[c]
}

// ParseCluster is the inverse of Cluster.String.
func ParseCluster(s string) (Cluster, error) {
	for i, name := range clusterNames {
		if name == s {
			return Cluster(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown cluster %q", internalerr.ErrInvalidInput, s)
}

// Clusters lists every cluster label in index order.
func Clusters() []Cluster {
	out := make([]Cluster, NumClusters)
	for i := range out {
		out[i] = Cluster(i)
	}
	return out
}
