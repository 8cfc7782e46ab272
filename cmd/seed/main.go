// Command main fills the Bislerium database with generated demo content.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"bislerium/internal/bootstrap"
	"bislerium/internal/config"
	"bislerium/internal/database"
	"bislerium/internal/seed"
)

func main() {
	defaults := seed.DefaultOptions()
	numUsers := flag.Int("users", defaults.Users, "Number of bloggers to create")
	numPosts := flag.Int("posts", defaults.Posts, "Number of posts to create")
	maxComments := flag.Int("comments", defaults.MaxComments, "Maximum top-level comments per post")
	replyChance := flag.Float64("replies", defaults.ReplyChance, "Chance that a comment receives a reply")
	voteChance := flag.Float64("votes", defaults.VoteChance, "Chance that a user votes on a post or comment")
	upvoteRatio := flag.Float64("upvote-ratio", defaults.UpvoteRatio, "Share of votes that are upvotes")
	seedValue := flag.Int64("seed", time.Now().UnixNano(), "Random seed; reuse it to reproduce a data set")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Printf("Target: %d users, %d posts, clean=%v, seed=%d", *numUsers, *numPosts, *shouldClean, *seedValue)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx := context.Background()
	s, err := seed.NewSeeder(db, seed.Options{
		Users:       *numUsers,
		Posts:       *numPosts,
		MaxComments: *maxComments,
		ReplyChance: *replyChance,
		VoteChance:  *voteChance,
		UpvoteRatio: *upvoteRatio,
		Seed:        *seedValue,
		Clean:       *shouldClean,
	})
	if err != nil {
		log.Fatalf("Failed to create seeder: %v", err)
	}

	summary, err := s.Run(ctx)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	// Clean wipes users, so restore the configured admin.
	if err := bootstrap.EnsureSuperAdmin(ctx, cfg, db); err != nil {
		log.Fatalf("Super admin bootstrap failed: %v", err)
	}

	log.Printf("Seeded %d users, %d posts, %d comments, %d votes",
		summary.Users, summary.Posts, summary.Comments, summary.Reactions)
	log.Printf("All seeded users have the password: %s", seed.DefaultPassword)
}
