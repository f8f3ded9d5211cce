// Package main runs the Moringa Q&A terminal client.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"

	"github.com/moringa-qa/client/internal/auth"
	"github.com/moringa-qa/client/internal/models"
	"github.com/moringa-qa/client/internal/orchestrator"
)

func main() {
	cmd := &cli.Command{
		Name:  "qa",
		Usage: "Client for the Moringa knowledge-sharing Q&A platform",
		Commands: []*cli.Command{
			viewCommand(),
			askCommand(),
			duplicatesCommand(),
			answerCommand(),
			acceptCommand(),
			voteCommand(),
			flagCommand(),
			followCommand(),
			unfollowCommand(),
			followsCommand(),
			notificationsCommand(),
			adminCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func viewCommand() *cli.Command {
	return &cli.Command{
		Name:      "view",
		Usage:     "Show a question with its answers (counts a view once per session)",
		ArgsUsage: "<question-id>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			id, err := uuid.Parse(cmd.Args().Get(0))
			if err != nil {
				return fmt.Errorf("invalid question id: %w", err)
			}
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.store.Load(ctx, id); err != nil {
				return err
			}
			if err := a.store.LoadAnswers(ctx, id); err != nil {
				return err
			}
			if err := a.store.RefreshFollows(ctx); err != nil {
				a.logger.Warn("follow list unavailable")
			}
			printDetail(a, id)
			return nil
		},
	}
}

func askCommand() *cli.Command {
	return &cli.Command{
		Name:  "ask",
		Usage: "Post a new question (checks for near-duplicates first)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Required: true},
			&cli.StringFlag{Name: "body", Required: true},
			&cli.StringFlag{Name: "category", Required: true},
			&cli.StringFlag{Name: "stage", Required: true},
			&cli.BoolFlag{Name: "force", Usage: "post even when similar questions exist"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			title := cmd.String("title")
			similar, err := a.adv.Lookup(ctx, title)
			if err != nil {
				a.logger.Warn("duplicate check failed, posting anyway")
			}
			if len(similar) > 0 {
				fmt.Printf("%d similar questions found:\n", len(similar))
				for _, q := range similar {
					fmt.Printf("  %s  %s\n", q.ID, q.Title)
				}
				if !cmd.Bool("force") {
					return fmt.Errorf("similar questions exist; re-run with --force to post anyway")
				}
			}

			question, err := a.gw.CreateQuestion(ctx, models.QuestionCreate{
				Title:    title,
				Body:     cmd.String("body"),
				Category: cmd.String("category"),
				Stage:    cmd.String("stage"),
			})
			if err != nil {
				return err
			}
			fmt.Printf("posted question %s\n", question.ID)
			return nil
		},
	}
}

func duplicatesCommand() *cli.Command {
	return &cli.Command{
		Name:      "duplicates",
		Usage:     "List existing questions similar to a title",
		ArgsUsage: "<title>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			similar, err := a.adv.Lookup(ctx, cmd.Args().Get(0))
			if err != nil {
				return err
			}
			if len(similar) == 0 {
				fmt.Println("No similar questions found")
				return nil
			}
			fmt.Printf("%d similar questions found\n", len(similar))
			for _, q := range similar {
				fmt.Printf("  %s  %s\n", q.ID, q.Title)
			}
			return nil
		},
	}
}

func answerCommand() *cli.Command {
	return &cli.Command{
		Name:      "answer",
		Usage:     "Post an answer under a question",
		ArgsUsage: "<question-id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "body", Required: true},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			questionID, err := uuid.Parse(cmd.Args().Get(0))
			if err != nil {
				return fmt.Errorf("invalid question id: %w", err)
			}
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.store.Load(ctx, questionID); err != nil {
				return err
			}
			answer, err := a.orch.CreateAnswer(ctx, questionID, models.AnswerCreate{Body: cmd.String("body")})
			if err != nil {
				return mutationError(a, orchestrator.KindCreateAnswer)
			}
			fmt.Printf("posted answer %s\n", answer.ID)
			return nil
		},
	}
}

func acceptCommand() *cli.Command {
	return &cli.Command{
		Name:      "accept",
		Usage:     "Accept an answer for your question",
		ArgsUsage: "<question-id> <answer-id>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			questionID, err := uuid.Parse(cmd.Args().Get(0))
			if err != nil {
				return fmt.Errorf("invalid question id: %w", err)
			}
			answerID, err := uuid.Parse(cmd.Args().Get(1))
			if err != nil {
				return fmt.Errorf("invalid answer id: %w", err)
			}
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.store.Load(ctx, questionID); err != nil {
				return err
			}
			if err := a.orch.AcceptAnswer(ctx, questionID, answerID); err != nil {
				return mutationError(a, orchestrator.KindAccept)
			}
			fmt.Println("answer accepted")
			return nil
		},
	}
}

func voteCommand() *cli.Command {
	return &cli.Command{
		Name:      "vote",
		Usage:     "Cast a vote on a question or answer",
		ArgsUsage: "<question|answer> <target-id> <+1|-1>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			targetType := cmd.Args().Get(0)
			targetID, err := uuid.Parse(cmd.Args().Get(1))
			if err != nil {
				return fmt.Errorf("invalid target id: %w", err)
			}
			value, err := strconv.Atoi(cmd.Args().Get(2))
			if err != nil {
				return fmt.Errorf("invalid vote value: %w", err)
			}
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			if _, err := a.orch.CastVote(ctx, models.VoteCreate{
				TargetType: targetType,
				TargetID:   targetID,
				Value:      value,
			}); err != nil {
				return mutationError(a, orchestrator.KindVote)
			}
			fmt.Println("vote cast")
			return nil
		},
	}
}

func flagCommand() *cli.Command {
	return &cli.Command{
		Name:      "flag",
		Usage:     "Report a question or answer for moderation",
		ArgsUsage: "<question|answer> <target-id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "reason", Required: true},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			targetType := cmd.Args().Get(0)
			targetID, err := uuid.Parse(cmd.Args().Get(1))
			if err != nil {
				return fmt.Errorf("invalid target id: %w", err)
			}
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			if _, err := a.orch.CreateFlag(ctx, models.FlagCreate{
				TargetType: targetType,
				TargetID:   targetID,
				Reason:     cmd.String("reason"),
			}); err != nil {
				return mutationError(a, orchestrator.KindFlag)
			}
			fmt.Println("flag submitted")
			return nil
		},
	}
}

func followCommand() *cli.Command {
	return &cli.Command{
		Name:      "follow",
		Usage:     "Follow a question",
		ArgsUsage: "<question-id>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runFollow(ctx, cmd, true)
		},
	}
}

func unfollowCommand() *cli.Command {
	return &cli.Command{
		Name:      "unfollow",
		Usage:     "Unfollow a question",
		ArgsUsage: "<question-id>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runFollow(ctx, cmd, false)
		},
	}
}

func runFollow(ctx context.Context, cmd *cli.Command, follow bool) error {
	questionID, err := uuid.Parse(cmd.Args().Get(0))
	if err != nil {
		return fmt.Errorf("invalid question id: %w", err)
	}
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	if follow {
		err = a.orch.Follow(ctx, questionID)
	} else {
		err = a.orch.Unfollow(ctx, questionID)
	}
	if err != nil {
		return mutationError(a, orchestrator.KindFollow)
	}
	if follow {
		fmt.Println("following")
	} else {
		fmt.Println("unfollowed")
	}
	return nil
}

func followsCommand() *cli.Command {
	return &cli.Command{
		Name:  "follows",
		Usage: "List questions you follow",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			questions, err := a.gw.ListFollows(ctx)
			if err != nil {
				return err
			}
			for _, q := range questions {
				fmt.Printf("%s  %s\n", q.ID, q.Title)
			}
			return nil
		},
	}
}

func notificationsCommand() *cli.Command {
	return &cli.Command{
		Name:  "notifications",
		Usage: "List notifications",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "read", Usage: "mark one notification id as read"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			if idStr := cmd.String("read"); idStr != "" {
				id, err := uuid.Parse(idStr)
				if err != nil {
					return fmt.Errorf("invalid notification id: %w", err)
				}
				return a.gw.MarkNotificationRead(ctx, id)
			}

			notifications, err := a.gw.ListNotifications(ctx)
			if err != nil {
				return err
			}
			for _, n := range notifications {
				marker := " "
				if !n.Read {
					marker = "*"
				}
				fmt.Printf("%s %s  %s  %s\n", marker, n.ID, n.Type, n.CreatedAt.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}

func adminCommand() *cli.Command {
	return &cli.Command{
		Name:  "admin",
		Usage: "Moderate content (admin role required)",
		Commands: []*cli.Command{
			{
				Name:      "edit-question",
				ArgsUsage: "<question-id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title"},
					&cli.StringFlag{Name: "body"},
					&cli.StringFlag{Name: "category"},
					&cli.StringFlag{Name: "stage"},
				},
				Action: adminAction(func(ctx context.Context, cmd *cli.Command, a *app, id uuid.UUID) error {
					patch := models.AdminQuestionPatch{
						Title:    optString(cmd, "title"),
						Body:     optString(cmd, "body"),
						Category: optString(cmd, "category"),
						Stage:    optString(cmd, "stage"),
					}
					if _, err := a.orch.AdminUpdateQuestion(ctx, id, patch); err != nil {
						return mutationError(a, orchestrator.KindAdminQuestion)
					}
					fmt.Println("question updated")
					return nil
				}),
			},
			{
				Name:      "edit-answer",
				ArgsUsage: "<answer-id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "body", Required: true},
				},
				Action: adminAction(func(ctx context.Context, cmd *cli.Command, a *app, id uuid.UUID) error {
					patch := models.AdminAnswerPatch{Body: optString(cmd, "body")}
					if _, err := a.orch.AdminUpdateAnswer(ctx, id, patch); err != nil {
						return mutationError(a, orchestrator.KindAdminAnswer)
					}
					fmt.Println("answer updated")
					return nil
				}),
			},
			{
				Name:      "delete-question",
				ArgsUsage: "<question-id>",
				Action: adminAction(func(ctx context.Context, cmd *cli.Command, a *app, id uuid.UUID) error {
					if err := a.orch.AdminDeleteQuestion(ctx, id); err != nil {
						return mutationError(a, orchestrator.KindAdminQuestion)
					}
					fmt.Println("question deleted")
					return nil
				}),
			},
			{
				Name:      "delete-answer",
				ArgsUsage: "<answer-id>",
				Action: adminAction(func(ctx context.Context, cmd *cli.Command, a *app, id uuid.UUID) error {
					if err := a.orch.AdminDeleteAnswer(ctx, id); err != nil {
						return mutationError(a, orchestrator.KindAdminAnswer)
					}
					fmt.Println("answer deleted")
					return nil
				}),
			},
		},
	}
}

// adminAction wraps an admin handler with app setup, id parsing and the
// client-side role gate. The server enforces the real check.
func adminAction(fn func(ctx context.Context, cmd *cli.Command, a *app, id uuid.UUID) error) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		id, err := uuid.Parse(cmd.Args().Get(0))
		if err != nil {
			return fmt.Errorf("invalid id: %w", err)
		}
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		if !auth.IsAdmin(a.token) {
			return fmt.Errorf("admin role required")
		}
		return fn(ctx, cmd, a, id)
	}
}

func optString(cmd *cli.Command, name string) *string {
	if !cmd.IsSet(name) {
		return nil
	}
	v := cmd.String(name)
	return &v
}

// mutationError surfaces the per-kind error slot, which carries the
// server's detail message when one was present.
func mutationError(a *app, kind orchestrator.Kind) error {
	state := a.orch.Status(kind)
	if state.Err != "" {
		return fmt.Errorf("%s", state.Err)
	}
	return fmt.Errorf("%s failed", kind)
}

func printDetail(a *app, id uuid.UUID) {
	detail, state := a.store.Detail()
	if detail == nil {
		fmt.Printf("question unavailable: %s\n", state.Err)
		return
	}
	following := ""
	if a.store.IsFollowing(id) {
		following = "  [following]"
	}
	fmt.Printf("%s%s\n", detail.Title, following)
	fmt.Printf("score %d | %d answers | %d views | %s / %s\n",
		detail.VoteScore, detail.AnswersCount, detail.ViewsCount, detail.Category, detail.Stage)
	if len(detail.Tags) > 0 {
		fmt.Print("tags:")
		for _, tag := range detail.Tags {
			fmt.Printf(" %s", tag.Name)
		}
		fmt.Println()
	}
	fmt.Printf("\n%s\n", detail.Body)

	answers, _ := a.store.Answers()
	for _, answer := range answers {
		accepted := ""
		if answer.IsAccepted {
			accepted = " [accepted]"
		}
		fmt.Printf("\n--- answer %s (score %d)%s\n%s\n", answer.ID, answer.VoteScore, accepted, answer.Body)
	}

	if len(detail.RelatedQuestions) > 0 {
		fmt.Println("\nrelated:")
		for _, q := range detail.RelatedQuestions {
			fmt.Printf("  %s  %s\n", q.ID, q.Title)
		}
	}
}
