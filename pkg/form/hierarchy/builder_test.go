package hierarchy

import (
	"testing"

	formTypes "github.com/formtracer/form-backend/pkg/form/types"
)

func intPtr(v int) *int {
	return &v
}

func collectIDs(roots []*Node) map[string]int {
	counts := map[string]int{}
	var walk func(node *Node)
	walk = func(node *Node) {
		counts[node.ID]++
		for _, child := range node.Children {
			walk(child)
		}
	}
	for _, root := range roots {
		walk(root)
	}
	return counts
}

func TestBuild(t *testing.T) {
	t.Run("flat list without conditions", func(t *testing.T) {
		roots := Build([]formTypes.Question{
			{ID: "a", QuestionType: formTypes.QUESTION_TYPE_TEXT},
			{ID: "b", QuestionType: formTypes.QUESTION_TYPE_TEXT},
		})
		if len(roots) != 2 {
			t.Fatalf("expected 2 roots, got %d", len(roots))
		}
		if roots[0].ID != "a" || roots[1].ID != "b" {
			t.Errorf("roots should keep input order: %v, %v", roots[0].ID, roots[1].ID)
		}
	})

	t.Run("children nest under their parents", func(t *testing.T) {
		roots := Build([]formTypes.Question{
			{ID: "parent", QuestionType: formTypes.QUESTION_TYPE_SINGLE_CHOICE},
			{ID: "child", QuestionType: formTypes.QUESTION_TYPE_TEXT,
				Condition: &formTypes.ParentRef{ParentQuestionID: "parent", RequiredOption: 0}},
			{ID: "grandchild", QuestionType: formTypes.QUESTION_TYPE_TEXT,
				Condition: &formTypes.ParentRef{ParentQuestionID: "child", RequiredOption: 0}},
		})
		if len(roots) != 1 {
			t.Fatalf("expected a single root, got %d", len(roots))
		}
		root := roots[0]
		if !root.Collapsible {
			t.Error("node with children should be collapsible")
		}
		if len(root.Children) != 1 || root.Children[0].ID != "child" {
			t.Fatalf("unexpected children of root: %v", root.Children)
		}
		if len(root.Children[0].Children) != 1 || root.Children[0].Children[0].ID != "grandchild" {
			t.Errorf("grandchild should nest under child")
		}
		if root.Children[0].Children[0].Collapsible {
			t.Error("leaf must not be collapsible")
		}
	})

	t.Run("parent defined after child in the list", func(t *testing.T) {
		roots := Build([]formTypes.Question{
			{ID: "child", QuestionType: formTypes.QUESTION_TYPE_TEXT,
				Condition: &formTypes.ParentRef{ParentQuestionID: "parent", RequiredOption: 0}},
			{ID: "parent", QuestionType: formTypes.QUESTION_TYPE_SINGLE_CHOICE},
		})
		if len(roots) != 1 || roots[0].ID != "parent" {
			t.Fatalf("expected parent as single root, got %v", roots)
		}
		if len(roots[0].Children) != 1 || roots[0].Children[0].ID != "child" {
			t.Errorf("child should attach to a later defined parent")
		}
	})

	t.Run("positional fallback resolution", func(t *testing.T) {
		roots := Build([]formTypes.Question{
			{ID: "p", QuestionType: formTypes.QUESTION_TYPE_SINGLE_CHOICE},
			{ID: "c", QuestionType: formTypes.QUESTION_TYPE_TEXT,
				Condition: &formTypes.ParentRef{ParentQuestionID: "renamed", ParentPosition: intPtr(0), RequiredOption: 0}},
		})
		if len(roots) != 1 || len(roots[0].Children) != 1 {
			t.Fatalf("expected positional fallback to attach the child, got %v", roots)
		}
	})

	t.Run("orphaned reference becomes a root", func(t *testing.T) {
		roots := Build([]formTypes.Question{
			{ID: "a", QuestionType: formTypes.QUESTION_TYPE_TEXT},
			{ID: "lost", QuestionType: formTypes.QUESTION_TYPE_TEXT,
				Condition: &formTypes.ParentRef{ParentQuestionID: "gone", RequiredOption: 0}},
		})
		if len(roots) != 2 {
			t.Fatalf("orphan should surface as root, got %d roots", len(roots))
		}
	})

	t.Run("questions without id get placeholders", func(t *testing.T) {
		roots := Build([]formTypes.Question{
			{QuestionType: formTypes.QUESTION_TYPE_TEXT},
			{QuestionType: formTypes.QUESTION_TYPE_TEXT},
		})
		if roots[0].ID != "temp-question-0" || roots[1].ID != "temp-question-1" {
			t.Errorf("expected placeholder ids, got %v and %v", roots[0].ID, roots[1].ID)
		}
	})

	t.Run("every question appears exactly once", func(t *testing.T) {
		questions := []formTypes.Question{
			{ID: "q1", QuestionType: formTypes.QUESTION_TYPE_SINGLE_CHOICE},
			{ID: "q2", QuestionType: formTypes.QUESTION_TYPE_TEXT,
				Condition: &formTypes.ParentRef{ParentQuestionID: "q1", RequiredOption: 0}},
			{ID: "q3", QuestionType: formTypes.QUESTION_TYPE_TEXT,
				Condition: &formTypes.ParentRef{ParentQuestionID: "ghost", RequiredOption: 0}},
			{QuestionType: formTypes.QUESTION_TYPE_TEXT},
		}
		counts := collectIDs(Build(questions))
		if len(counts) != len(questions) {
			t.Fatalf("expected %d distinct nodes, got %v", len(questions), counts)
		}
		for id, n := range counts {
			if n != 1 {
				t.Errorf("question %s appears %d times", id, n)
			}
		}
	})

	t.Run("mutual parent references break the cycle", func(t *testing.T) {
		questions := []formTypes.Question{
			{ID: "q1", QuestionType: formTypes.QUESTION_TYPE_SINGLE_CHOICE},
			{ID: "q2", QuestionType: formTypes.QUESTION_TYPE_SINGLE_CHOICE,
				Condition: &formTypes.ParentRef{ParentQuestionID: "q3", RequiredOption: 0}},
			{ID: "q3", QuestionType: formTypes.QUESTION_TYPE_TEXT,
				Condition: &formTypes.ParentRef{ParentQuestionID: "q2", RequiredOption: 0}},
		}
		roots := Build(questions)
		counts := collectIDs(roots)
		for _, id := range []string{"q1", "q2", "q3"} {
			if counts[id] != 1 {
				t.Errorf("question %s appears %d times", id, counts[id])
			}
		}
	})

	t.Run("self referencing question stays a root", func(t *testing.T) {
		roots := Build([]formTypes.Question{
			{ID: "loop", QuestionType: formTypes.QUESTION_TYPE_TEXT,
				Condition: &formTypes.ParentRef{ParentQuestionID: "loop", RequiredOption: 0}},
		})
		if len(roots) != 1 || roots[0].ID != "loop" {
			t.Fatalf("self referencing question should be a root, got %v", roots)
		}
		if len(roots[0].Children) != 0 {
			t.Error("self referencing question must not contain itself")
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if roots := Build(nil); len(roots) != 0 {
			t.Errorf("expected empty forest, got %v", roots)
		}
	})
}
