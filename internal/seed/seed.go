package seed

import (
	"fmt"
	"log"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

var categoryNames = []string{
	"Technology", "Travel", "Food", "Science", "Music", "Books", "Gaming",
}

// Run populates the database with demo users, categories, posts, comments
// and likes. It is idempotent enough for development: it refuses to run on a
// database that already has users.
func Run(db *gorm.DB) error {
	var userCount int64
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount > 0 {
		log.Println("Seed skipped: database already has users")
		return nil
	}

	f := NewFactory(db)

	categories := make([]*models.Category, 0, len(categoryNames))
	for _, name := range categoryNames {
		category, err := f.CreateCategory(name)
		if err != nil {
			return fmt.Errorf("seed category %q: %w", name, err)
		}
		categories = append(categories, category)
	}

	users := make([]*models.User, 0, 10)
	for i := 0; i < 10; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		users = append(users, user)
	}

	var posts []*models.Post
	for _, user := range users {
		n := 1 + f.rand.Intn(4)
		for i := 0; i < n; i++ {
			published := f.rand.Intn(5) > 0 // roughly one draft in five
			post, err := f.CreatePost(user, func(p *models.Post) {
				p.Published = published
				p.Categories = []models.Category{*categories[f.rand.Intn(len(categories))]}
			})
			if err != nil {
				return fmt.Errorf("seed post: %w", err)
			}
			posts = append(posts, post)
		}
	}

	for _, post := range posts {
		if !post.Published {
			continue
		}
		for _, user := range users {
			if f.rand.Intn(3) == 0 {
				if _, err := f.CreateComment(user, post); err != nil {
					return fmt.Errorf("seed comment: %w", err)
				}
			}
			if f.rand.Intn(2) == 0 {
				if err := f.CreateLike(user, post); err != nil {
					return fmt.Errorf("seed like: %w", err)
				}
			}
		}
	}

	log.Printf("Seed complete: %d users, %d categories, %d posts", len(users), len(categories), len(posts))
	return nil
}
